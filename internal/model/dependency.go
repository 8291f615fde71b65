package model

// Dependencies — граф зависимостей между объектами (scripted ordering).
// Две таблицы по ID объекта: прямые рёбра и обратные. Рёбра не удерживают
// объекты в памяти: хранятся только ID.
type Dependencies struct {
	dependsOn map[uint32]map[uint32]struct{}
	dependors map[uint32]map[uint32]struct{}
}

// NewDependencies creates an empty graph.
func NewDependencies() *Dependencies {
	return &Dependencies{
		dependsOn: make(map[uint32]map[uint32]struct{}),
		dependors: make(map[uint32]map[uint32]struct{}),
	}
}

// Add records that a depends on b (a→b, mirrored as b's dependor a).
func (d *Dependencies) Add(a, b uint32) {
	addEdge(d.dependsOn, a, b)
	addEdge(d.dependors, b, a)
}

// Remove deletes the edge a→b from both tables.
func (d *Dependencies) Remove(a, b uint32) {
	removeEdge(d.dependsOn, a, b)
	removeEdge(d.dependors, b, a)
}

// Clear removes every edge touching id. O(degree).
func (d *Dependencies) Clear(id uint32) {
	for dep := range d.dependsOn[id] {
		removeEdge(d.dependors, dep, id)
	}
	delete(d.dependsOn, id)

	for dependor := range d.dependors[id] {
		removeEdge(d.dependsOn, dependor, id)
	}
	delete(d.dependors, id)
}

// DependsOn returns the IDs id depends on.
func (d *Dependencies) DependsOn(id uint32) []uint32 {
	return keys(d.dependsOn[id])
}

// Dependors returns the IDs that depend on id.
func (d *Dependencies) Dependors(id uint32) []uint32 {
	return keys(d.dependors[id])
}

// Has reports whether the edge a→b exists.
func (d *Dependencies) Has(a, b uint32) bool {
	_, ok := d.dependsOn[a][b]
	return ok
}

// Len returns the number of edges.
func (d *Dependencies) Len() int {
	n := 0
	for _, set := range d.dependsOn {
		n += len(set)
	}
	return n
}

func addEdge(m map[uint32]map[uint32]struct{}, from, to uint32) {
	set, ok := m[from]
	if !ok {
		set = make(map[uint32]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

func removeEdge(m map[uint32]map[uint32]struct{}, from, to uint32) {
	set, ok := m[from]
	if !ok {
		return
	}
	delete(set, to)
	if len(set) == 0 {
		delete(m, from)
	}
}

func keys(set map[uint32]struct{}) []uint32 {
	if len(set) == 0 {
		return nil
	}
	out := make([]uint32, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// AddDependency records that the object depends on other.
func (o *Object) AddDependency(other *Object) {
	o.env.Deps.Add(o.id, other.id)
}

// ClearDependencies removes every dependency edge touching the object.
func (o *Object) ClearDependencies() {
	o.env.Deps.Clear(o.id)
}
