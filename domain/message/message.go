package message

// Rendered is a chat message ready for delivery: a plain-text fallback for
// clients that cannot show structured bodies, plus an ordered list of blocks.
type Rendered struct {
	FallbackText string
	Blocks       []Block
}

// BlockType discriminates the block variants the bridge emits.
type BlockType string

const (
	BlockTypeText    BlockType = "section"
	BlockTypeActions BlockType = "actions"
)

// Block is either a markdown text section or a row of interactive controls.
// Exactly one of Text / Controls is meaningful, selected by Type.
type Block struct {
	Type     BlockType
	Text     string
	Controls []Control
}

// Control is one interactive button embedded in an actions block. Context is
// the opaque envelope string the chat platform echoes back on click.
type Control struct {
	ID      ControlID
	Label   string
	Style   string
	Context string
}

// TextBlock builds a markdown section block.
func TextBlock(text string) Block {
	return Block{Type: BlockTypeText, Text: text}
}

// ActionBlock builds a trailing controls block.
func ActionBlock(controls ...Control) Block {
	return Block{Type: BlockTypeActions, Controls: controls}
}

// WithoutControls returns a copy of m with every actions block replaced by a
// single text block reading ack. Replacing the whole block, rather than
// editing buttons, makes a repeated rewrite converge on the same message.
func (m Rendered) WithoutControls(ack string) Rendered {
	out := Rendered{FallbackText: m.FallbackText, Blocks: make([]Block, 0, len(m.Blocks))}
	for _, b := range m.Blocks {
		if b.Type == BlockTypeActions {
			out.Blocks = append(out.Blocks, TextBlock(ack))
			continue
		}
		out.Blocks = append(out.Blocks, b)
	}
	if len(m.Blocks) == 0 {
		out.Blocks = append(out.Blocks, TextBlock(ack))
	}
	return out
}

// HasControls reports whether any block still carries interactive controls.
func (m Rendered) HasControls() bool {
	for _, b := range m.Blocks {
		if b.Type == BlockTypeActions && len(b.Controls) > 0 {
			return true
		}
	}
	return false
}
