package train

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/fishbeet/pke/internal/corpus"
	"github.com/fishbeet/pke/internal/df"
	"github.com/fishbeet/pke/internal/model"
	"github.com/fishbeet/pke/internal/reference"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// fakeModel emits fixed candidates per document id, features encoding
// (document, selection index) so label alignment is checkable.
type fakeModel struct {
	candidates map[string][]string
	failing    map[string]bool
	docID      string
}

func (f *fakeModel) ReadDocument(path string, _ corpus.ReadOptions) error {
	f.docID = corpus.DocID(path)
	if f.failing[f.docID] {
		return pkgerrors.InFile(pkgerrors.ErrDocumentRead, path, 0, "synthetic failure")
	}
	return nil
}

func (f *fakeModel) CandidateSelection() error { return nil }

func (f *fakeModel) FeatureExtraction(_ df.Table, _ bool) error { return nil }

func (f *fakeModel) Instances() []model.Instance {
	cands := f.candidates[f.docID]
	out := make([]model.Instance, 0, len(cands))
	for i, c := range cands {
		out = append(out, model.Instance{
			Candidate: c,
			Features:  []float64{float64(i)},
		})
	}
	return out
}

type fakeTrainer struct {
	instances [][]float64
	labels    []int
	modelFile string
}

func (f *fakeTrainer) Train(instances [][]float64, labels []int, modelFile string) error {
	f.instances = instances
	f.labels = labels
	f.modelFile = modelFile
	return nil
}

func corpusFixture() (map[string][]string, reference.Set, []string) {
	candidates := map[string][]string{
		"doc1": {"cat", "dog", "bird"},
		"doc2": {"cat", "fish"},
	}
	refs := reference.Set{
		"doc1": {"cat"},
		"doc2": {"fish", "shark"},
	}
	files := []string{"/corpus/doc1.xml", "/corpus/doc2.xml"}
	return candidates, refs, files
}

func TestAssembleLabels(t *testing.T) {
	candidates, refs, files := corpusFixture()
	var factoryCalls atomic.Int64
	asm, err := New(Options{
		References: refs,
		Factory: func() model.Model {
			factoryCalls.Add(1)
			return &fakeModel{candidates: candidates}
		},
		Trainer: &fakeTrainer{},
		Workers: 2,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := asm.Assemble(context.Background(), files)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(res.Instances) != 5 || len(res.Labels) != 5 {
		t.Fatalf("got %d instances, %d labels, want 5 and 5", len(res.Instances), len(res.Labels))
	}
	wantLabels := []int{1, 0, 0, 0, 1}
	for i, want := range wantLabels {
		if res.Labels[i] != want {
			t.Errorf("labels[%d] = %d, want %d (labels: %v)", i, res.Labels[i], want, res.Labels)
		}
	}
	// Instance features encode selection order; alignment must hold after the
	// per-worker merge.
	wantFirst := []float64{0, 1, 2, 0, 1}
	for i, want := range wantFirst {
		if res.Instances[i][0] != want {
			t.Errorf("instances[%d] = %v, want selection index %v", i, res.Instances[i], want)
		}
	}
	if got := factoryCalls.Load(); got != 2 {
		t.Errorf("factory called %d times, want one fresh model per document", got)
	}
}

func TestAssembleMissingReferenceIsLoose(t *testing.T) {
	candidates, refs, _ := corpusFixture()
	delete(refs, "doc2")
	asm, err := New(Options{
		References: refs,
		Factory:    func() model.Model { return &fakeModel{candidates: candidates} },
		Trainer:    &fakeTrainer{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := asm.Assemble(context.Background(), []string{"/corpus/doc1.xml", "/corpus/doc2.xml"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// doc2's candidates all label 0 when its reference entry is absent.
	for _, label := range res.Labels[3:] {
		if label != 0 {
			t.Errorf("doc2 labels should all be 0, got %v", res.Labels)
		}
	}
}

func TestAssembleStrictMode(t *testing.T) {
	candidates, refs, _ := corpusFixture()
	delete(refs, "doc2")
	asm, err := New(Options{
		References: refs,
		Factory:    func() model.Model { return &fakeModel{candidates: candidates} },
		Trainer:    &fakeTrainer{},
		Strict:     true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = asm.Assemble(context.Background(), []string{"/corpus/doc1.xml", "/corpus/doc2.xml"})
	if !errors.Is(err, pkgerrors.ErrUnknownDocumentReference) {
		t.Fatalf("got %v, want unknown document reference error", err)
	}
}

func TestAssembleSkipsFailingDocuments(t *testing.T) {
	candidates, refs, files := corpusFixture()
	asm, err := New(Options{
		References: refs,
		Factory: func() model.Model {
			return &fakeModel{candidates: candidates, failing: map[string]bool{"doc1": true}}
		},
		Trainer: &fakeTrainer{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := asm.Assemble(context.Background(), files)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(res.Instances) != 2 {
		t.Fatalf("got %d instances, want 2 (doc1 skipped)", len(res.Instances))
	}
	if res.Labels[1] != 1 {
		t.Errorf("doc2 fish should be positive: %v", res.Labels)
	}
}

func TestRunInvokesTrainer(t *testing.T) {
	candidates, refs, files := corpusFixture()
	trainer := &fakeTrainer{}
	asm, err := New(Options{
		References: refs,
		Factory:    func() model.Model { return &fakeModel{candidates: candidates} },
		Trainer:    trainer,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := asm.Run(context.Background(), files, "/tmp/out.json"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if trainer.modelFile != "/tmp/out.json" {
		t.Errorf("trainer got model file %q", trainer.modelFile)
	}
	if len(trainer.instances) != len(trainer.labels) {
		t.Errorf("trainer arrays misaligned: %d vs %d", len(trainer.instances), len(trainer.labels))
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Options{Trainer: &fakeTrainer{}}); !errors.Is(err, pkgerrors.ErrConfiguration) {
		t.Error("missing factory should be a configuration error")
	}
	if _, err := New(Options{Factory: func() model.Model { return nil }}); !errors.Is(err, pkgerrors.ErrConfiguration) {
		t.Error("missing trainer should be a configuration error")
	}
}
