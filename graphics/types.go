package graphics

type (
	Buffer  struct{ V uint32 }
	Program struct{ V uint32 }
	Shader  struct{ V uint32 }
	Texture struct{ V uint32 }
	Attrib  struct{ V int32 }
	Uniform struct{ V int32 }
)

var (
	NoAttrib  = Attrib{V: -1}
	NoUniform = Uniform{V: -1}
)

func (a Attrib) Valid() bool {
	return a.V >= 0
}

func (u Uniform) Valid() bool {
	return u.V >= 0
}

func (p Program) Valid() bool {
	return p.V != 0
}

func (s Shader) Valid() bool {
	return s.V != 0
}

func (b Buffer) Valid() bool {
	return b.V != 0
}

func (t Texture) Valid() bool {
	return t.V != 0
}
