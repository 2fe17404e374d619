package overrides

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/teranos/dep5/deb822"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/logger"
	"github.com/teranos/dep5/years"
)

type tomlDocument struct {
	Intro        *Intro        `toml:"intro"`
	Wildcards    []*Wildcard   `toml:"wildcards"`
	LicenseTexts []LicenseText `toml:"license_texts"`
}

// Load reads an override file, choosing the format by extension: ".toml" is
// TOML, anything else is DEP5. A missing file yields an empty set.
func Load(path string, opts years.Normalization, log *zap.SugaredLogger) (*Set, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Set{Path: path}, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(path, opts, log)
	}
	return LoadDEP5(path, opts, log)
}

// LoadTOML reads overrides written as TOML. Unknown keys are logged and
// otherwise ignored.
func LoadTOML(path string, opts years.Normalization, log *zap.SugaredLogger) (*Set, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	var doc tomlDocument
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse overrides %s", path)
	}
	for _, key := range md.Undecoded() {
		log.Warnw("ignoring unknown key in overrides",
			logger.FieldPath, path,
			logger.FieldKey, key.String())
	}

	set := &Set{Path: path, Intro: doc.Intro, Wildcards: doc.Wildcards, LicenseTexts: doc.LicenseTexts}
	if err := set.compile(opts); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadDEP5 reads overrides written as a DEP5 copyright file. The first
// paragraph with a Format field is the intro, paragraphs with Files become
// wildcards and the remaining paragraphs with a License become license texts.
// Any other paragraph is logged and skipped.
func LoadDEP5(path string, opts years.Normalization, log *zap.SugaredLogger) (*Set, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open overrides %s", path)
	}
	defer f.Close()

	stanzas, err := deb822.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse overrides %s", path)
	}

	set := &Set{Path: path}
	for _, st := range stanzas {
		switch {
		case set.Intro == nil && st.Has("Format"):
			set.Intro = introFromStanza(st)
		case st.Has("Files"):
			files, _ := st.Get("Files")
			copyrightText, _ := st.Get("Copyright")
			license, _ := st.Get("License")
			comment, _ := st.Get("Comment")
			set.Wildcards = append(set.Wildcards, &Wildcard{
				Patterns:  strings.Fields(files),
				License:   license,
				Copyright: copyrightText,
				Comment:   comment,
			})
		case st.Has("License"):
			license, _ := st.Get("License")
			comment, _ := st.Get("Comment")
			set.LicenseTexts = append(set.LicenseTexts, LicenseText{License: license, Comment: comment})
		default:
			log.Warnw("ignoring paragraph without Files or License in overrides",
				logger.FieldPath, path,
				logger.FieldLine, st.Line)
		}
	}
	if err := set.compile(opts); err != nil {
		return nil, err
	}
	return set, nil
}

func introFromStanza(st deb822.Stanza) *Intro {
	get := func(name string) string {
		v, _ := st.Get(name)
		return v
	}
	return &Intro{
		Format:          get("Format"),
		UpstreamName:    get("Upstream-Name"),
		UpstreamContact: get("Upstream-Contact"),
		Source:          get("Source"),
		Disclaimer:      get("Disclaimer"),
		Comment:         get("Comment"),
		License:         get("License"),
		Copyright:       get("Copyright"),
	}
}

func (s *Set) compile(opts years.Normalization) error {
	for i, w := range s.Wildcards {
		if err := w.Compile(opts); err != nil {
			return errors.Wrapf(err, "%s: wildcard %d", s.Path, i+1)
		}
	}
	return nil
}
