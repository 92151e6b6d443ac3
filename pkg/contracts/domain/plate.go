package domain

// PlateMap assigns a label (a sample or group name) to each occupied well of
// one plate. It is built once per input file and is immutable afterwards;
// wells left blank in the source grid are simply absent keys.
type PlateMap struct {
	labels map[Well]string
	order  []string
}

// NewPlateMap constructs an immutable plate map. Both arguments are copied,
// so the caller's map and slice may be reused afterwards. The order slice is
// the optional preferred display order read from the map file's order column;
// it may be empty.
func NewPlateMap(labels map[Well]string, order []string) *PlateMap {
	m := &PlateMap{
		labels: make(map[Well]string, len(labels)),
		order:  make([]string, len(order)),
	}
	for w, label := range labels {
		m.labels[w] = label
	}
	copy(m.order, order)
	return m
}

// Label returns the label assigned to the well, if any.
func (m *PlateMap) Label(w Well) (string, bool) {
	label, ok := m.labels[w]
	return label, ok
}

// Len returns the number of occupied wells.
func (m *PlateMap) Len() int {
	return len(m.labels)
}

// Wells returns the occupied wells in unspecified order.
func (m *PlateMap) Wells() []Well {
	wells := make([]Well, 0, len(m.labels))
	for w := range m.labels {
		wells = append(wells, w)
	}
	return wells
}

// Order returns a copy of the preferred display order declared in the map
// file. Empty when the file carried no order column.
func (m *PlateMap) Order() []string {
	order := make([]string, len(m.order))
	copy(order, m.order)
	return order
}
