package document

import (
	"bytes"
	"io"
	"os"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/beevik/etree"
)

// Document is a parsed application file. It is not safe for concurrent use.
type Document struct {
	doc        *etree.Document
	pluginList *etree.Element
	refs       []Reference
}

// ResourceURL is a URL-bearing node somewhere in the document
type ResourceURL struct {
	Value string
	// Persistent is true for uriString nodes that already sit in a
	// resource-reference container
	Persistent bool

	el *etree.Element
}

// Parse parses an application file
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrDocumentParse, "failed to parse application XML")
	}
	return newDocument(doc)
}

// Load parses an application file from a reader
func Load(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrDocumentParse, "failed to parse application XML")
	}
	return newDocument(doc)
}

// LoadFile parses the application file at path
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "application file %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func newDocument(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrDocumentStructure, "document has no root element")
	}
	urlList := root.SelectElement(ElemURLList)
	if urlList == nil {
		return nil, errors.Newf(errors.ErrDocumentStructure, "root element %s has no %s", root.Tag, ElemURLList)
	}
	pluginList := urlList.SelectElement(ElemLocalList)
	if pluginList == nil {
		return nil, errors.Newf(errors.ErrDocumentStructure, "%s has no %s", ElemURLList, ElemLocalList)
	}

	d := &Document{doc: doc, pluginList: pluginList}
	for i, el := range pluginList.ChildElements() {
		ref, err := decodeReference(el)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrDocumentStructure, "invalid plugin entry #%d", i+1).
				WithDetail("index", i)
		}
		d.refs = append(d.refs, ref)
	}
	return d, nil
}

// References returns the decoded plugin list in document order
func (d *Document) References() []Reference {
	out := make([]Reference, len(d.refs))
	copy(out, d.refs)
	return out
}

// ReplaceReference puts a Maven plugin entry in the slot of ref
func (d *Document) ReplaceReference(ref Reference, group, artifact, version string) error {
	idx := -1
	for i, r := range d.refs {
		if r.Same(ref) {
			idx = i
			break
		}
	}
	if idx < 0 || ref.el.Parent() != d.pluginList {
		return errors.New(errors.ErrNotFound, "plugin reference is not in the plugin list").
			WithDetail("oldPath", ref.OldPath())
	}

	plugin := newMavenPlugin(group, artifact, version)
	slot := ref.el.Index()
	d.pluginList.RemoveChildAt(slot)
	d.pluginList.InsertChildAt(slot, plugin)

	d.refs[idx] = Reference{
		Kind:     KindCoordinate,
		Group:    group,
		Artifact: artifact,
		Version:  version,
		el:       plugin,
	}
	return nil
}

// ResourceURLs selects every urlString and every resource-reference
// uriString in the document, in document order per element name
func (d *Document) ResourceURLs() []ResourceURL {
	var urls []ResourceURL
	for _, el := range d.doc.FindElements("//" + ElemURLString) {
		urls = append(urls, ResourceURL{Value: el.Text(), el: el})
	}
	for _, el := range d.doc.FindElements("//" + ElemRRPersistence + "/" + ElemURIString) {
		urls = append(urls, ResourceURL{Value: el.Text(), Persistent: true, el: el})
	}
	return urls
}

// InPluginList reports whether the URL belongs to an entry of the plugin list
func (d *Document) InPluginList(u ResourceURL) bool {
	container := u.el.Parent()
	return container != nil && container.Parent() == d.pluginList
}

// ReplaceResource points u at a creole:// uri. A urlString's container is
// swapped for a resource-reference container at the same position.
func (d *Document) ReplaceResource(u ResourceURL, uri string) error {
	if u.Persistent {
		u.el.SetText(uri)
		return nil
	}

	container := u.el.Parent()
	if container == nil || container.Parent() == nil {
		return errors.Newf(errors.ErrDocumentStructure, "%s %q has no container", ElemURLString, u.Value)
	}
	grand := container.Parent()
	slot := container.Index()
	grand.RemoveChildAt(slot)
	grand.InsertChildAt(slot, newRRPersistence(uri))
	return nil
}

// Bytes serializes the document indented by two spaces
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo serializes the document indented by two spaces
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if !hasDeclaration(d.doc) {
		d.doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="UTF-8"`))
	}
	d.doc.Indent(2)
	n, err := d.doc.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(err, errors.ErrFileWrite, "failed to serialize document")
	}
	return n, nil
}

func hasDeclaration(doc *etree.Document) bool {
	for _, t := range doc.Child {
		if p, ok := t.(*etree.ProcInst); ok && p.Target == "xml" {
			return true
		}
	}
	return false
}
