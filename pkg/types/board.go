package types

// BoardVersion is the only descriptor version this package understands.
const BoardVersion = 1

// IDFormatAlphanumeric6 is the card ID format tag stored in board settings.
const IDFormatAlphanumeric6 = "alphanumeric6"

// Board is the top-level descriptor stored in board.yaml.
type Board struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Version     int       `yaml:"version"`
	Columns     []Column  `yaml:"columns"`
	Labels      []Label   `yaml:"labels"`
	CardOrder   CardOrder `yaml:"cardOrder"`
	Settings    Settings  `yaml:"settings"`
}

// Column is a named workflow stage.
type Column struct {
	Name        string `yaml:"name"`
	WIPLimit    int    `yaml:"wipLimit,omitempty"`
	Done        bool   `yaml:"done,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Label is one entry of the board's label palette.
type Label struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Settings holds board-wide defaults.
type Settings struct {
	AutoArchiveDays int    `yaml:"autoArchiveDays"`
	DefaultPriority string `yaml:"defaultPriority"`
	DefaultColumn   string `yaml:"defaultColumn"`
	IDFormat        string `yaml:"idFormat"`
}

// Column returns the column definition with the given name.
func (b *Board) Column(name string) (Column, bool) {
	for _, c := range b.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether name is one of the board's columns.
func (b *Board) HasColumn(name string) bool {
	_, ok := b.Column(name)
	return ok
}

// ColumnIndex returns the position of the named column, or -1.
func (b *Board) ColumnIndex(name string) int {
	for i, c := range b.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// DoneColumn returns the first column flagged as done.
func (b *Board) DoneColumn() (Column, bool) {
	for _, c := range b.Columns {
		if c.Done {
			return c, true
		}
	}
	return Column{}, false
}

// HasLabel reports whether name is in the label palette.
func (b *Board) HasLabel(name string) bool {
	for _, l := range b.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}
