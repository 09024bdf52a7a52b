package notebook

// untitled is the title of a notebook that has no file yet.
const untitled = "Untitled"

// Document is an open notebook: its text, its file and whether it has
// unsaved edits.
type Document struct {
	path     string
	text     string
	modified bool
}

// New returns an empty, untitled document.
func New() *Document {
	return &Document{}
}

// Open loads the notebook at path.
func Open(path string) (*Document, error) {
	text, err := Read(path)
	if err != nil {
		return nil, err
	}
	return &Document{path: path, text: text}, nil
}

// Text returns the current text.
func (d *Document) Text() string { return d.text }

// Path returns the file path, empty for an untitled document.
func (d *Document) Path() string { return d.path }

// Modified reports whether there are unsaved edits.
func (d *Document) Modified() bool { return d.modified }

// SetText replaces the text. Setting identical text is not an edit.
func (d *Document) SetText(text string) {
	if text == d.text {
		return
	}
	d.text = text
	d.modified = true
}

// Title names the document the way its window would.
func (d *Document) Title() string {
	name := untitled
	if d.path != "" {
		name = d.path
	}
	return name + " - Notepad"
}

// Save writes the text to the document's file. Untitled documents return
// ErrNoPath; use SaveAs.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	if err := Write(d.path, d.text); err != nil {
		return err
	}
	d.modified = false
	return nil
}

// SaveAs writes the text to path and makes path the document's file. A
// path with the wrong extension leaves the document unchanged.
func (d *Document) SaveAs(path string) error {
	if err := Write(path, d.text); err != nil {
		return err
	}
	d.path = path
	d.modified = false
	return nil
}
