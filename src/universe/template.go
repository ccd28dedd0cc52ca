package universe

import "sort"

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

var builtinTemplates = map[string]Template{
	"block": {
		"block",
		"2x2 still life",
		[][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	"blinker": {
		"blinker",
		"period 2 oscillator, horizontal phase",
		[][]int{{0, 0}, {1, 0}, {2, 0}},
	},
	"toad": {
		"toad",
		"period 2 oscillator",
		[][]int{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
	"beacon": {
		"beacon",
		"period 2 oscillator made of two blocks",
		[][]int{{0, 0}, {1, 0}, {0, 1}, {3, 2}, {2, 3}, {3, 3}},
	},
	"glider": {
		"glider",
		"moves one cell diagonally down-right every 4 generations",
		[][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	},
}

//BuiltinTemplate returns the predefined template by name
func BuiltinTemplate(name string) (Template, bool) {
	t, ok := builtinTemplates[name]
	return t, ok
}

//BuiltinTemplateNames returns the sorted names of the predefined templates
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtinTemplates))
	for k := range builtinTemplates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Settle makes the template cells Alive, shifted by dx, dy
//coordinates wrap around the grid edges
func (u *Universe) Settle(t Template, dx int, dy int) {
	if u.width == 0 || u.height == 0 {
		return
	}
	w, h := int(u.width), int(u.height)
	for _, v := range t.Coordinates {
		if len(v) != 2 {
			continue
		}
		x := ((v[0]+dx)%w + w) % w
		y := ((v[1]+dy)%h + h) % h
		u.Set(x, y, Alive)
	}
}
