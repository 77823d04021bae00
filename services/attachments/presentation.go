package attachments

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	drawingMLNamespace = "http://schemas.openxmlformats.org/drawingml/2006/main"
	slideRelType       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// presentationHTML renders the text runs of every slide, in slide order,
// one paragraph per run.
func presentationHTML(filePath, title string) (string, error) {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return "", errors.Wrap(err, "open presentation")
	}
	defer archive.Close()

	files := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		files[f.Name] = f
	}

	slides := slideOrder(files)
	if len(slides) == 0 {
		return "", errors.New("presentation has no slides")
	}

	b := newHTMLBuilder(title)
	for i, name := range slides {
		runs, err := slideTextRuns(files[name])
		if err != nil {
			return "", errors.Wrapf(err, "read %s", name)
		}
		b.raw(`<div class="slide">` + "\n")
		b.element("h2", "Slide "+strconv.Itoa(i+1))
		for _, run := range runs {
			b.element("p", run)
		}
		b.raw("</div>\n")
	}
	return b.String(), nil
}

// slideOrder follows the slide list of ppt/presentation.xml and falls back
// to the numeric order of the slide part names.
func slideOrder(files map[string]*zip.File) []string {
	if ordered, err := presentationSlideList(files); err == nil && len(ordered) > 0 {
		return ordered
	}

	var slides []string
	for name := range files {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			slides = append(slides, name)
		}
	}
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i]) < slideNumber(slides[j])
	})
	return slides
}

func slideNumber(name string) int {
	n, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml"))
	return n
}

type presentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func presentationSlideList(files map[string]*zip.File) ([]string, error) {
	var pres presentationXML
	if err := decodeXML(files["ppt/presentation.xml"], &pres); err != nil {
		return nil, err
	}
	var rels relationshipsXML
	if err := decodeXML(files["ppt/_rels/presentation.xml.rels"], &rels); err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		if rel.Type == slideRelType {
			if strings.HasPrefix(rel.Target, "/") {
				targets[rel.ID] = path.Clean(strings.TrimPrefix(rel.Target, "/"))
			} else {
				targets[rel.ID] = path.Clean(path.Join("ppt", rel.Target))
			}
		}
	}

	var slides []string
	for _, id := range pres.SlideIDs {
		target, ok := targets[id.RelID]
		if !ok {
			continue
		}
		if _, exists := files[target]; exists {
			slides = append(slides, target)
		}
	}
	return slides, nil
}

func decodeXML(f *zip.File, v any) error {
	if f == nil {
		return errors.New("part missing")
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// slideTextRuns returns the non-empty a:t runs of a slide in document order.
func slideTextRuns(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var runs []string
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return runs, nil
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Space != drawingMLNamespace || start.Name.Local != "t" {
			continue
		}
		var text string
		if err := decoder.DecodeElement(&text, &start); err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) != "" {
			runs = append(runs, text)
		}
	}
}
