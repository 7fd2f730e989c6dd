package xiangqi

// FlipBoard 换位视角：旋转 180° 并且红黑互换
func FlipBoard(b *Board) Board {
	var out Board
	for p := 0; p < BoardSize; p++ {
		out[BoardSize-1-p] = b[p].Negate()
	}
	return out
}

// MirrorBoardHorizontal 左右镜像，颜色不变
func MirrorBoardHorizontal(b *Board) Board {
	var out Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			out[Pos(r, Cols-1-c)] = b[Pos(r, c)]
		}
	}
	return out
}

// MirrorBoardVertical 上下镜像：第 r 行与第 9-r 行互换，同时红黑互换
func MirrorBoardVertical(b *Board) Board {
	var out Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			out[Pos(Rows-1-r, c)] = b[Pos(r, c)].Negate()
		}
	}
	return out
}
