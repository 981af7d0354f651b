package dna

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/models"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		content string
		write   bool
		want    models.DNAStatus
	}{
		{
			name:  "no descriptor",
			write: false,
			want:  models.DNAMissing,
		},
		{
			name:    "valid descriptor",
			write:   true,
			content: "name: trader-bot\nversion: 1.2.0\nfamily: trading\n",
			want:    models.DNAValid,
		},
		{
			name:    "missing required version",
			write:   true,
			content: "name: trader-bot\n",
			want:    models.DNAInvalid,
		},
		{
			name:    "bad semver",
			write:   true,
			content: "name: trader-bot\nversion: not-a-version\n",
			want:    models.DNAInvalid,
		},
		{
			name:    "unknown family",
			write:   true,
			content: "name: trader-bot\nversion: 1.0.0\nfamily: gardening\n",
			want:    models.DNAInvalid,
		},
		{
			name:    "yaml syntax error",
			write:   true,
			content: "name: [unclosed\n",
			want:    models.DNAInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := fs.MkdirAll("/eco/proj", 0o755); err != nil {
				t.Fatal(err)
			}
			if tt.write {
				if err := afero.WriteFile(fs, "/eco/proj/gleaner.yaml", []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			v := NewValidator(fs)
			if got := v.Status("/eco/proj"); got != tt.want {
				t.Errorf("Status() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLoadReturnsFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "name: scraper-kit\nversion: 0.3.1\ndescription: shared scraping helpers\nstack: python\n"
	if err := afero.WriteFile(fs, "/p/gleaner.yaml", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := NewValidator(fs).Load("/p/gleaner.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Name != "scraper-kit" || d.Version != "0.3.1" || d.Stack != "python" {
		t.Errorf("unexpected descriptor: %+v", d)
	}
}
