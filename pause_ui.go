package main

import (
	"image/color"

	"github.com/milk9111/oneroom/common"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

type dialogButton struct {
	label   string
	onClick func()
}

// newDialog builds a centered panel with a title, some lines of text and a
// column of buttons.
func newDialog(title string, lines []string, buttons ...dialogButton) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(center),
	))
	for _, line := range lines {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(line, &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
			widget.TextOpts.WidgetOpts(center),
		))
	}
	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the pause menu shown while the game is paused.
func NewPauseUI(g *Game) *ebitenui.UI {
	return newDialog("Paused", []string{"Esc or P to resume"},
		dialogButton{label: "Resume", onClick: func() { g.setPaused(false) }},
		dialogButton{label: "Restart level", onClick: func() {
			g.paused = false
			g.controller.Restart()
		}},
		dialogButton{label: "Level select", onClick: func() {
			g.paused = false
			g.controller.ReturnToMenu()
		}},
	)
}
