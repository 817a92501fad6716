package entity

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PointerEventType string

const (
	PointerContextMenu PointerEventType = "contextmenu"
	PointerClick       PointerEventType = "click"
	PointerMove        PointerEventType = "mousemove"
)

type PointerButton int

const (
	ButtonLeft   PointerButton = 0
	ButtonMiddle PointerButton = 1
	ButtonRight  PointerButton = 2
)

// PointerEvent is a single pointer interaction reported by the observed page.
type PointerEvent struct {
	Type    PointerEventType `json:"type"`
	Button  PointerButton    `json:"button"`
	ClientX float64          `json:"clientX"`
	ClientY float64          `json:"clientY"`
}

// IsContextMenu reports whether the event is a right-click equivalent.
func (e PointerEvent) IsContextMenu() bool {
	return e.Type == PointerContextMenu || (e.Type == PointerClick && e.Button == ButtonRight)
}

func (e PointerEvent) Position() Position {
	return Position{X: e.ClientX, Y: e.ClientY}
}

type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) Center() Position {
	return Position{X: float64(v.Width) / 2, Y: float64(v.Height) / 2}
}
