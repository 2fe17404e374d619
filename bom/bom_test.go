package bom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/dep5/errors"
)

const sampleDocument = `SPDXVersion: SPDX-2.2
DataLicense: CC0-1.0
SPDXID: SPDXRef-DOCUMENT
DocumentName: example

FileName: ./LICENSE
SPDXID: SPDXRef-File-0
LicenseInfoInFile: MIT
FileCopyrightText: NOASSERTION

PackageName: example
SPDXID: SPDXRef-Package
PackageLicenseConcluded: NOASSERTION
PackageCopyrightText: <text>Copyright 2020 Package Level</text>

FileName: ./src/main.c
SPDXID: SPDXRef-File-1
FileChecksum: SHA1: 85ed0817af83a24ad8da68c2b5094de69833983c
LicenseConcluded: NOASSERTION
LicenseInfoInFile: MIT
LicenseInfoInFile: Apache-2.0
LicenseInfoInFile: MIT
FileCopyrightText: <text>Copyright 2020 Jane Doe
Copyright 2021, 2022 John Roe
</text>

FileName: ./README.md
SPDXID: SPDXRef-File-2
LicenseConcluded: CC-BY-4.0
LicenseInfoInFile: NOASSERTION
FileCopyrightText: NONE

FileName: ./src/util.c
SPDXID: SPDXRef-File-3
LicenseInfoInFile: MIT
FileCopyrightText: <text>SPDX-FileCopyrightText: 2019 Jane Doe</text>
LicenseComments: <text>spans
several: lines</text>
`

func TestReadTagValue(t *testing.T) {
	records, err := ReadTagValue(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	require.Len(t, records, 4)

	license := records[0]
	assert.Equal(t, "./LICENSE", license.Path, "unpackaged files come first")
	assert.False(t, license.HasCopyright)

	main := records[1]
	assert.Equal(t, "./src/main.c", main.Path)
	assert.True(t, main.HasCopyright)
	assert.Equal(t, "Copyright 2020 Jane Doe\nCopyright 2021, 2022 John Roe", main.CopyrightText)
	assert.Equal(t, []string{"Apache-2.0", "MIT"}, main.Licenses())

	readme := records[2]
	assert.False(t, readme.HasCopyright)
	assert.Equal(t, []string{"CC-BY-4.0"}, readme.Licenses(), "concluded license wins")

	util := records[3]
	assert.Equal(t, "SPDX-FileCopyrightText: 2019 Jane Doe", util.CopyrightText)
	assert.Equal(t, []string{"MIT"}, util.Licenses())
}

func TestReadTagValue_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"missing version", "FileName: a\nSPDXID: SPDXRef-a\n"},
		{"unsupported version", "SPDXVersion: SPDX-9.9\nFileName: a\nSPDXID: SPDXRef-a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTagValue(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInputError(err))
			assert.Contains(t, err.Error(), "spdx tag-value")
		})
	}
}

func TestFromDocument_Nil(t *testing.T) {
	assert.Empty(t, FromDocument(nil))
}

func TestTextValue(t *testing.T) {
	assert.Equal(t, "2020 Jane", textValue("<text>2020 Jane\n</text>"))
	assert.Equal(t, "NONE", textValue(" NONE "))
}

func TestReadTagValueFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.spdx")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0644))

	records, err := ReadTagValueFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 4)

	_, err = ReadTagValueFile(filepath.Join(dir, "missing.spdx"))
	assert.True(t, errors.IsNotFoundError(err))
}

func TestNormalize(t *testing.T) {
	records := []FileRecord{
		{Path: "./a.c", CopyrightText: "2020 Jane", HasCopyright: true},
		{Path: "./b.c", CopyrightText: "NONE"},
		{Path: "c.c", CopyrightText: "   ", HasCopyright: true},
		{Path: "./d.c", CopyrightText: "NOASSERTION", HasCopyright: true},
	}

	kept := Normalize(records, false)
	require.Len(t, kept, 4)
	assert.Equal(t, "a.c", kept[0].Path)
	assert.Equal(t, "", kept[1].CopyrightText)
	assert.False(t, kept[2].HasCopyright)
	assert.Equal(t, "", kept[3].CopyrightText)

	omitted := Normalize(records, true)
	require.Len(t, omitted, 1)
	assert.Equal(t, "a.c", omitted[0].Path)
}

func TestLicenses_SentinelFallback(t *testing.T) {
	tests := []struct {
		name   string
		record FileRecord
		want   []string
	}{
		{"info sentinel", FileRecord{LicenseConcluded: "NOASSERTION", LicenseInfos: []string{"NONE", " "}}, []string{"NONE"}},
		{"concluded sentinel", FileRecord{LicenseConcluded: "NONE"}, []string{"NONE"}},
		{"nothing declared", FileRecord{}, []string{"NOASSERTION"}},
		{"real ids beat sentinels", FileRecord{LicenseInfos: []string{"NOASSERTION", "MIT"}}, []string{"MIT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Licenses())
		})
	}
}
