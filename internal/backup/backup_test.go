package backup

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nhle/photodesk/internal/apperr"
	"github.com/nhle/photodesk/internal/model"
)

func sampleData() model.Data {
	d := model.Defaults()
	d.Photographers = append(d.Photographers, model.Photographer{Name: "Ana"})
	d.Services = append(d.Services, model.Service{Name: "Sin precio"})
	d.Events = []model.Event{{
		ID: "1715344200000", Client: "Lucía", Phone: "+54 11 5555", Type: "Boda",
		Service: "Boda Completa", Date: "10/05/2024", Location: "Salón Norte",
		Status: model.EventStatusActive, CreatedAt: "2024-05-10T12:30:00.000Z",
	}}
	d.Sessions = []model.Session{{
		ID: "1715344200001", EventID: "1715344200000", Date: "10/05/2024", Time: "00:00",
		Photographer: "Fotógrafo Principal", Location: "Salón Norte",
		Notes: model.MainSessionNotes, Status: model.SessionStatusPending,
	}}
	d.Checklists = []model.Checklist{{
		ID: "1715344200002", ClientID: "1715344200000", ClientName: "Lucía",
		Items:     []model.ChecklistItem{{Name: "Fotos editadas enviadas", Completed: true}, {Name: "Link de descarga compartido"}},
		CreatedAt: "2024-05-10T12:31:00.000Z", Archived: true,
	}}
	return d
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			in := sampleData()

			var buf bytes.Buffer
			if err := Export(&buf, in, f); err != nil {
				t.Fatalf("Export: %v", err)
			}

			out, err := Import(&buf, model.Defaults(), f)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if !reflect.DeepEqual(out, in) {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
			}
		})
	}
}

func TestExportJSONIsIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, model.Defaults(), FormatJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"photographers\": [\n    \"Fotógrafo Principal\"") {
		t.Fatalf("unexpected layout:\n%s", buf.String())
	}
}

func TestImportMergesOnlyPresentKeys(t *testing.T) {
	base := sampleData()
	in := `{"photographers": [{"name": "Beto"}], "events": []}`

	out, err := Import(strings.NewReader(in), base, FormatJSON)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(out.Photographers) != 1 || out.Photographers[0].Name != "Beto" {
		t.Errorf("photographers = %+v", out.Photographers)
	}
	if len(out.Events) != 0 {
		t.Errorf("events = %+v, want replaced by empty list", out.Events)
	}
	if !reflect.DeepEqual(out.Sessions, base.Sessions) || !reflect.DeepEqual(out.Services, base.Services) {
		t.Error("missing keys did not keep base data")
	}
}

func TestImportRejectsMalformed(t *testing.T) {
	for name, tc := range map[string]struct {
		body string
		f    Format
	}{
		"json garbage": {"{not json", FormatJSON},
		"json array":   {"[1,2]", FormatJSON},
		"empty":        {"   ", FormatJSON},
		"yaml garbage": {"photographers: [unclosed", FormatYAML},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tc.body), model.Defaults(), tc.f)
			if !errors.Is(err, apperr.ErrParse) {
				t.Fatalf("err = %v, want ErrParse", err)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	if FormatFromPath("backup.YML") != FormatYAML || FormatFromPath("data.json") != FormatJSON || FormatFromPath("data") != FormatJSON {
		t.Error("FormatFromPath misdetects")
	}
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YAML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, apperr.ErrParse) {
		t.Errorf("ParseFormat(xml) err = %v", err)
	}
}

func TestSchedulerWriteNow(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	s, err := NewScheduler("@daily", dir, FormatYAML, sampleData)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	path, err := s.WriteNow()
	if err != nil {
		t.Fatalf("WriteNow: %v", err)
	}
	if filepath.Ext(path) != ".yaml" {
		t.Errorf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := Import(f, model.Defaults(), FormatFromPath(path))
	if err != nil {
		t.Fatalf("Import backup: %v", err)
	}
	if len(got.Events) != 1 {
		t.Errorf("backup events = %+v", got.Events)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("backup dir has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	if _, err := NewScheduler("every tuesday", t.TempDir(), FormatJSON, sampleData); err == nil {
		t.Fatal("NewScheduler accepted an invalid schedule")
	}
}

func TestWriteFileKeepsOldContentOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WriteFile err = %v, want boom", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "old" {
		t.Errorf("file = %q, want untouched", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}
