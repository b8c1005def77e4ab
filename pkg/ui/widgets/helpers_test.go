package widgets

import (
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/observable"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

// layout measures and arranges e at the origin of a w x h space.
func layout(e runtime.Element, w, h int) {
	e.Measure(runtime.Size{Width: w, Height: h})
	e.Arrange(runtime.NewRect(0, 0, w, h))
}

// draw lays out e and renders it into a fresh w x h buffer.
func draw(e runtime.Element, w, h int) *runtime.Buffer {
	layout(e, w, h)
	buf := runtime.NewBuffer(w, h)
	e.Render(runtime.NewContext(buf, backend.DefaultStyle()))
	return buf
}

func press(e runtime.Element, keys ...terminal.Key) (consumed []bool) {
	for _, k := range keys {
		consumed = append(consumed, e.KeyPressed(runtime.KeyMsg{Key: k}))
	}
	return consumed
}

func texts(words ...string) (*observable.List[runtime.Element], []*TextBox) {
	boxes := make([]*TextBox, len(words))
	items := make([]runtime.Element, len(words))
	for i, w := range words {
		boxes[i] = NewTextBox(w, w)
		items[i] = boxes[i]
	}
	return observable.NewList(items...), boxes
}

func watchInvalidations(e runtime.Element) *[]runtime.InvalidationKind {
	var kinds []runtime.InvalidationKind
	e.OnInvalidate(func(k runtime.InvalidationKind) {
		kinds = append(kinds, k)
	})
	return &kinds
}
