package universe

//nextState applies the birth/survival rule to one cell
func nextState(alive bool, liveNeighbours uint8) bool {
	switch {
	case alive && liveNeighbours < 2:
		//underpopulation
		return false
	case alive && (liveNeighbours == 2 || liveNeighbours == 3):
		return true
	case alive && liveNeighbours > 3:
		//overpopulation
		return false
	case !alive && liveNeighbours == 3:
		//reproduction
		return true
	}
	return alive
}
