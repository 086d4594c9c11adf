// Package main implements the stag script evaluator.
package main

import (
	"flag"
	"fmt"
	"go/token"
	gotypes "go/types"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/you-not-fish/stag/internal/eval"
	"github.com/you-not-fish/stag/internal/goimport"
	"github.com/you-not-fish/stag/internal/syntax"
	"github.com/you-not-fish/stag/internal/tag"
	"github.com/you-not-fish/stag/internal/types"
)

// Command flags
var (
	exprSrc    = flag.String("e", "", "Evaluate script source given on the command line")
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	dumpTypes  = flag.Bool("types", false, "Output the predeclared type tags")
	goType     = flag.String("go", "", "Describe the tag of a Go type expression")
	format     = flag.String("format", "text", "Output format (text or json)")
	lenient    = flag.Bool("lenient", false, "Skip characters outside a literal's radix")
	version    = flag.Bool("version", false, "Print version")
	trace      = flag.Bool("trace", false, "Output timing trace")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "stag %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: stagc [options] <file.stag>\n")
		fmt.Fprintf(os.Stderr, "       stagc [options] -e 'script'\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("stagc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	if *format != "text" && *format != "json" {
		fmt.Fprintf(os.Stderr, "error: unknown format %q\n", *format)
		os.Exit(1)
	}

	if *dumpTypes {
		os.Exit(runTypes())
	}
	if *goType != "" {
		os.Exit(runGoType(*goType))
	}

	filename, src, err := openInput(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintln(os.Stderr, "usage: stagc [options] <file.stag>")
		os.Exit(1)
	}
	defer src.Close()

	switch {
	case *emitTokens:
		os.Exit(runEmitTokens(filename, src))
	case *emitAST:
		os.Exit(runEmitAST(filename, src))
	}
	os.Exit(runEval(filename, src))
}

// openInput returns the script named by -e or by the first argument.
func openInput(args []string) (string, io.ReadCloser, error) {
	if *exprSrc != "" {
		return "", io.NopCloser(strings.NewReader(*exprSrc)), nil
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("no input file")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return "", nil, err
	}
	return args[0], f, nil
}

// phase reports the time spent since start when -trace is set.
func phase(name string, start time.Time) {
	if *trace {
		fmt.Fprintf(os.Stderr, "trace: %-8s %v\n", name, time.Since(start))
	}
}

// runEmitTokens scans the input and prints all tokens with positions.
func runEmitTokens(filename string, src io.Reader) int {
	var errors []string
	errh := func(line, col uint32, msg string) {
		errors = append(errors, fmt.Sprintf("%s: %s", syntax.NewPos(filename, line, col), msg))
	}

	s := syntax.NewScanner(filename, src, errh)

	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Printf("%-20s %-12s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
	}

	if len(errors) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errors {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}
	return 0
}

// formatLiteral quotes a literal for display. Inserted semicolons carry
// "newline" or "EOF" as their literal.
func formatLiteral(lit string) string {
	if lit == "" {
		return `""`
	}
	return fmt.Sprintf("%q", lit)
}

// runEmitAST parses the input and outputs the AST.
func runEmitAST(filename string, src io.Reader) int {
	start := time.Now()
	f, errs := parse(filename, src)
	phase("parse", start)

	syntax.Fprint(os.Stdout, f)
	if errs > 0 {
		return 1
	}
	return 0
}

// parse parses the input, printing syntax errors to stderr, and returns
// the file with the number of errors.
func parse(filename string, src io.Reader) (*syntax.File, int) {
	errs := 0
	errh := func(pos syntax.Pos, msg string) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", pos, msg)
		errs++
	}
	f, _ := syntax.Parse(filename, src, errh)
	return f, errs
}

// resultJSON is the JSON form of an evaluated statement.
type resultJSON struct {
	Pos   string          `json:"pos"`
	Name  string          `json:"name,omitzero"`
	Expr  string          `json:"expr"`
	Kind  string          `json:"kind"`
	Value string          `json:"value"`
	Tag   *tag.Descriptor `json:"tag,omitzero"`
}

// runEval evaluates the input and prints the value of each expression
// statement.
func runEval(filename string, src io.Reader) int {
	start := time.Now()
	f, errs := parse(filename, src)
	phase("parse", start)
	if errs > 0 {
		return 1
	}

	start = time.Now()
	conf := &eval.Config{
		Error: func(pos syntax.Pos, msg string) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", pos, msg)
		},
		Lenient: *lenient,
	}
	results, err := eval.Eval(f, conf, nil)
	phase("eval", start)

	switch *format {
	case "json":
		out := make([]resultJSON, len(results))
		for i, r := range results {
			out[i] = resultJSON{
				Pos:   r.Pos.String(),
				Name:  r.Name,
				Expr:  r.Expr,
				Kind:  eval.KindOf(r.Value),
				Value: r.Value.String(),
			}
			if t, ok := r.Value.(eval.Type); ok && !t.Tag.IsNonSuch() {
				d := tag.Describe(t.Tag)
				out[i].Tag = &d
			}
		}
		if werr := writeJSON(out); werr != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", werr)
			return 1
		}
	default:
		for _, r := range results {
			if r.Name == "" {
				fmt.Println(r.Value)
			}
		}
	}

	if err != nil {
		return 1
	}
	return 0
}

func writeJSON(v any) error {
	if err := json.MarshalWrite(os.Stdout, v, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

// typeJSON is the JSON form of a predeclared name.
type typeJSON struct {
	Name     string          `json:"name"`
	Template string          `json:"template,omitzero"`
	Tag      *tag.Descriptor `json:"tag,omitzero"`
}

// runTypes prints the tags of the predeclared types and templates.
func runTypes() int {
	names := types.Universe.Names()
	out := make([]typeJSON, 0, len(names))
	for _, name := range names {
		switch obj := types.Universe.Lookup(name).(type) {
		case *types.TypeName:
			d := tag.Describe(tag.FromType(obj.Type()))
			out = append(out, typeJSON{Name: name, Tag: &d})
		case *types.TemplateName:
			out = append(out, typeJSON{Name: name, Template: obj.Template().String()})
		}
	}

	if *format == "json" {
		if err := writeJSON(out); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("%-12s %-20s %-16s %s\n", "NAME", "TAG", "CATEGORY", "SIZE")
	for _, e := range out {
		if e.Tag == nil {
			fmt.Printf("%-12s %-20s %-16s %s\n", e.Name, "partial<"+e.Template+">", "-", "-")
			continue
		}
		fmt.Printf("%-12s %-20s %-16s %s\n", e.Name, e.Tag.Tag, e.Tag.Category, formatSize(e.Tag.Size))
	}
	return 0
}

// runGoType type-checks a Go type expression and prints its tag.
func runGoType(src string) int {
	tv, err := gotypes.Eval(token.NewFileSet(), nil, token.NoPos, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if !tv.IsType() {
		fmt.Fprintf(os.Stderr, "error: %s is not a type\n", src)
		return 1
	}

	d := tag.Describe(goimport.New().Import(tv.Type))
	if *format == "json" {
		if err := writeJSON(d); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}
	printDescriptor(os.Stdout, d)
	return 0
}

func printDescriptor(w io.Writer, d tag.Descriptor) {
	fmt.Fprintf(w, "tag:        %s\n", d.Tag)
	fmt.Fprintf(w, "category:   %s\n", d.Category)
	fmt.Fprintf(w, "size:       %s\n", formatSize(d.Size))
	if d.Const || d.Volatile {
		fmt.Fprintf(w, "qualifiers: %s\n", strings.TrimSpace(qualifiers(d)))
	}
	if d.Underlying != nil {
		fmt.Fprintf(w, "underlying: %s\n", d.Underlying)
	}
	if d.Return != nil {
		fmt.Fprintf(w, "return:     %s\n", d.Return)
		fmt.Fprintf(w, "params:     %s\n", tag.NewList(d.Params...))
	}
}

func qualifiers(d tag.Descriptor) string {
	var s string
	if d.Const {
		s += "const "
	}
	if d.Volatile {
		s += "volatile"
	}
	return s
}

func formatSize(n *uint64) string {
	if n == nil {
		return "none"
	}
	return fmt.Sprint(*n)
}
