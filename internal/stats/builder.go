package stats

// Row is one report line: release and module labels followed by one
// column group per company that answered.
type Row []string

// Table holds closed rows in the order they were closed.
type Table []Row

// RowWidth is the length of a row where every company answered.
func RowWidth(companies int) int {
	return 2 + CellsPerCompany*companies
}

// Builder groups fetched contributions into rows, one per (release, module)
// pair. A row is open while it holds cells and is closed when the release or
// module changes, or on Finish.
//
// release and module are the labels of the last successful append; module is
// cleared whenever a new release starts or a row is closed on a module change,
// and an empty module means the next append writes the labels.
type Builder struct {
	table   Table
	row     Row
	release string
	module  string
}

func (b *Builder) open() bool {
	return len(b.row) > 0
}

func (b *Builder) close() {
	b.table = append(b.table, b.row)
	b.row = nil
}

// StartRelease is called before the first module of every release.
func (b *Builder) StartRelease(release string) {
	b.module = ""
	if b.open() && b.release != release {
		b.close()
		b.release = ""
	}
}

// StartModule is called before the first company of every module.
func (b *Builder) StartModule(module string) {
	if b.open() && b.module != module {
		b.close()
		b.module = ""
	}
}

// Append adds a company's cells to the open row, writing the labels first if
// this is the first successful company of the pair.
func (b *Builder) Append(c Combination, cells []string) {
	if b.module == "" {
		b.row = append(b.row, c.Release, c.Module)
	}
	b.row = append(b.row, cells...)
	b.release = c.Release
	b.module = c.Module
}

// Observe drives the release and module transitions from a combination's
// position in the enumeration.
func (b *Builder) Observe(c Combination) {
	if c.ModuleIndex == 0 && c.CompanyIndex == 0 {
		b.StartRelease(c.Release)
	}
	if c.CompanyIndex == 0 {
		b.StartModule(c.Module)
	}
}

// Finish closes the open row, if any, and returns the table.
func (b *Builder) Finish() Table {
	if b.open() {
		b.close()
	}
	return b.table
}
