// Package render 把棋盘画成 SVG。
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"xiangqi/internal/xiangqi"
)

// Options 零值即默认
type Options struct {
	Cell     int                // 格子边长（像素），默认 60
	Targets  []xiangqi.Position // 高亮的可走落点
	LastMove xiangqi.Movement   // 上一步，NoMovement 或 0 表示不标记
	Title    string
}

var (
	redNames   = [...]string{"", "帅", "仕", "相", "马", "车", "炮", "兵"}
	blackNames = [...]string{"", "将", "士", "象", "马", "车", "炮", "卒"}
)

// PieceName 棋子的汉字，空位返回 ""
func PieceName(p xiangqi.Piece) string {
	k := p.Kind()
	if k <= xiangqi.KindNone || k > xiangqi.KindSoldier {
		return ""
	}
	if p.IsRed() {
		return redNames[k]
	}
	return blackNames[k]
}

// Board 输出完整的 SVG 文档
func Board(w io.Writer, b *xiangqi.Board, opt Options) {
	cell := opt.Cell
	if cell <= 0 {
		cell = 60
	}
	margin := cell
	width := (xiangqi.Cols-1)*cell + 2*margin
	height := (xiangqi.Rows-1)*cell + 2*margin
	x := func(col int) int { return margin + col*cell }
	y := func(row int) int { return margin + row*cell }

	canvas := svg.New(w)
	canvas.Start(width, height)
	if opt.Title != "" {
		canvas.Title(opt.Title)
	}
	canvas.Rect(0, 0, width, height, "fill:#f0d9a6")

	canvas.Gstyle("stroke:#5a3a1a;stroke-width:2")
	for r := 0; r < xiangqi.Rows; r++ {
		canvas.Line(x(0), y(r), x(xiangqi.Cols-1), y(r))
	}
	for c := 0; c < xiangqi.Cols; c++ {
		if c == 0 || c == xiangqi.Cols-1 {
			canvas.Line(x(c), y(0), x(c), y(xiangqi.Rows-1))
			continue
		}
		// 河界处断开
		canvas.Line(x(c), y(0), x(c), y(4))
		canvas.Line(x(c), y(5), x(c), y(xiangqi.Rows-1))
	}
	for _, top := range []int{0, 7} {
		canvas.Line(x(3), y(top), x(5), y(top+2))
		canvas.Line(x(5), y(top), x(3), y(top+2))
	}
	canvas.Gend()

	fontSize := cell * 2 / 5
	riverY := (y(4)+y(5))/2 + fontSize/3
	riverStyle := fmt.Sprintf("font-size:%dpx;fill:#5a3a1a;text-anchor:middle", fontSize)
	canvas.Text(x(2), riverY, "楚 河", riverStyle)
	canvas.Text(x(6), riverY, "汉 界", riverStyle)

	if opt.LastMove != xiangqi.NoMovement && opt.LastMove != 0 {
		for _, p := range []xiangqi.Position{opt.LastMove.From(), opt.LastMove.To()} {
			if !p.Valid() {
				continue
			}
			half := cell / 2
			canvas.Rect(x(xiangqi.Col(p))-half, y(xiangqi.Row(p))-half, cell, cell,
				"fill:none;stroke:#2f7dd1;stroke-width:3;stroke-dasharray:6,4")
		}
	}

	radius := cell * 9 / 20
	for p := xiangqi.Position(0); p < xiangqi.BoardSize; p++ {
		name := PieceName(b[p])
		if name == "" {
			continue
		}
		color := "#b0201a"
		if b[p].IsBlack() {
			color = "#202020"
		}
		cx, cy := x(xiangqi.Col(p)), y(xiangqi.Row(p))
		canvas.Circle(cx, cy, radius, fmt.Sprintf("fill:#fbeed0;stroke:%s;stroke-width:3", color))
		canvas.Text(cx, cy+fontSize*2/5, name,
			fmt.Sprintf("font-size:%dpx;fill:%s;text-anchor:middle;font-weight:bold", fontSize+4, color))
	}

	for _, p := range opt.Targets {
		if !p.Valid() {
			continue
		}
		canvas.Circle(x(xiangqi.Col(p)), y(xiangqi.Row(p)), cell/8, "fill:#2f7dd1;fill-opacity:0.7")
	}

	canvas.End()
}
