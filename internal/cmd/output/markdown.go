package output

import (
	"io"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/dreamdwell/dreamdwell/internal/cmd/table"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// writeMarkdown renders a GitHub flavored markdown table. Values that
// cannot be laid out as a table are written as a fenced JSON block.
func writeMarkdown(w io.Writer, data any) error {
	d, ok := data.(table.Data)
	if !ok {
		d, ok = toTableData(data)
	}
	if !ok {
		var b strings.Builder
		if err := writeJSON(&b, data); err != nil {
			return err
		}
		return md.NewMarkdown(w).CodeBlocks(md.SyntaxHighlight("json"), strings.TrimSpace(b.String())).Build()
	}
	return md.NewMarkdown(w).Table(md.TableSet{Header: d.Headers, Rows: d.Rows}).Build()
}

// writePropertyMarkdown renders one listing as a heading, a details table and
// its remote images. Inline images are listed by position only.
func writePropertyMarkdown(w io.Writer, p properties.Property) error {
	doc := md.NewMarkdown(w).H2(p.Name)

	withoutImages := p
	withoutImages.Images = nil
	details := table.PropertyDetails(withoutImages)
	doc.Table(md.TableSet{Header: details.Headers, Rows: details.Rows})

	if len(p.Images) > 0 {
		doc.H3("Images")
		items := make([]string, len(p.Images))
		for i, img := range p.Images {
			if img.IsData() {
				items[i] = "inline " + img.MediaType() + " (#" + strconv.Itoa(i) + ")"
				continue
			}
			items[i] = md.Image(p.Name+" "+strconv.Itoa(i), string(img))
		}
		doc.BulletList(items...)
	}
	return doc.Build()
}
