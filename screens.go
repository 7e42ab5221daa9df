package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gavinmorrow/Pollywog/ecs/component"
)

// screenButton moves the game to next when clicked.
type screenButton struct {
	label string
	next  component.GameState
}

// Screen is a full-window menu shown outside InGame. Enter activates the
// first button.
type Screen struct {
	ui      *ebitenui.UI
	primary component.GameState
	choose  func(component.GameState)
}

func (s *Screen) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		s.choose(s.primary)
		return
	}
	s.ui.Update()
}

func (s *Screen) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
}

// newScreens builds the Start, Dead and Win menus. choose is called with the
// requested state when a button is used.
func newScreens(width, height int, choose func(component.GameState)) map[component.GameState]*Screen {
	back := screenButton{label: "Back to Start Screen", next: component.StateStartScreen}
	return map[component.GameState]*Screen{
		component.StateStartScreen: newScreen(width, height, "Pollywog", choose,
			screenButton{label: "Play", next: component.StateInGame}),
		component.StateDead: newScreen(width, height, "You died. Sorry!", choose,
			screenButton{label: "Restart", next: component.StateInGame}, back),
		component.StateWin: newScreen(width, height, "You won!", choose,
			screenButton{label: "Play again", next: component.StateInGame}, back),
	}
}

func newScreen(width, height int, title string, choose func(component.GameState), buttons ...screenButton) *Screen {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x2e, G: 0x36, B: 0x33, A: 0xff})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x57, B: 0x52, A: 0xff})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 32, Right: 32}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/2, height/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(center),
	))

	for _, b := range buttons {
		next := b.next
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnHover}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Top: 6, Bottom: 6, Left: 16, Right: 16}),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				choose(next)
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	primary := component.StateInGame
	if len(buttons) > 0 {
		primary = buttons[0].next
	}
	return &Screen{ui: &ebitenui.UI{Container: root}, primary: primary, choose: choose}
}
