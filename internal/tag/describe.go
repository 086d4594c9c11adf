package tag

// Descriptor is a flat summary of a tag's derived queries, for output.
type Descriptor struct {
	Tag        Tag     `json:"tag"`
	Key        string  `json:"key"`
	Category   string  `json:"category"`
	Size       *uint64 `json:"size,omitzero"`
	Const      bool    `json:"const,omitzero"`
	Volatile   bool    `json:"volatile,omitzero"`
	Underlying *Tag    `json:"underlying,omitzero"`
	Return     *Tag    `json:"return,omitzero"`
	Params     []Tag   `json:"params,omitzero"`
	Variadic   bool    `json:"variadic,omitzero"`
}

// Describe returns the descriptor of t. It panics on NonSuch.
func Describe(t Tag) Descriptor {
	d := Descriptor{
		Tag:      t,
		Key:      t.Key(),
		Category: t.Category().String(),
		Const:    t.IsConst(),
		Volatile: t.IsVolatile(),
		Variadic: t.IsVariadic(),
	}
	if n, ok := t.Size().Uint64(); ok {
		d.Size = &n
	}
	if u := t.UnderlyingType(); !u.IsNonSuch() {
		d.Underlying = &u
	}
	if r := t.ReturnType(); !r.IsNonSuch() {
		d.Return = &r
		params, _ := t.ParamTypes()
		d.Params = params.Tags()
	}
	return d
}
