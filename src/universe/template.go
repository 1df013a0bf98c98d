package universe

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates []Coord //cells to bring alive
}

var BuiltinTemplates = []Template{
	{"block", "2x2 still life", []Coord{{1, 1}, {1, 2}, {2, 1}, {2, 2}}},
	{"blinker", "period 2 oscillator", []Coord{{2, 1}, {2, 2}, {2, 3}}},
	{"beacon", "period 2 oscillator made of two blocks", []Coord{{1, 1}, {1, 2}, {2, 1}, {3, 4}, {4, 3}, {4, 4}}},
	{"glider", "moves one cell diagonally every 4 generations", []Coord{{1, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}},
}
