package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GabrielSilvaSI/Rice/filter"
	"github.com/GabrielSilvaSI/Rice/pipeline"
	"github.com/GabrielSilvaSI/Rice/recall"
	"github.com/GabrielSilvaSI/Rice/rerank"
	"github.com/GabrielSilvaSI/Rice/store"
)

const pipelineYAML = `
pipeline:
  name: recommend
  nodes:
    - type: recall.content
      config:
        top_k: 100
    - type: filter
      config:
        rated: true
        rule: "item.score > 0.05"
    - type: rerank.topn
      config:
        n: 10
`

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestDefaultFactory_BuildsPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.LoadFromYAML(writeTempYAML(t, pipelineYAML))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}

	st := store.NewMemoryStore()
	factory := DefaultFactory(nil, nil, st)
	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("build pipeline: %v", err)
	}
	if len(p.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(p.Nodes))
	}

	rc, ok := p.Nodes[0].(*recall.ContentRecall)
	if !ok || rc.TopK != 100 {
		t.Errorf("node[0] = %#v, want ContentRecall with TopK=100", p.Nodes[0])
	}
	fn, ok := p.Nodes[1].(*filter.FilterNode)
	if !ok || len(fn.Filters) != 2 {
		t.Errorf("node[1] should combine rated + rule filters, got %#v", p.Nodes[1])
	}
	tn, ok := p.Nodes[2].(*rerank.TopNNode)
	if !ok || tn.N != 10 {
		t.Errorf("node[2] = %#v, want TopNNode with N=10", p.Nodes[2])
	}
}

func TestDefaultFactory_UnknownNodeType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "recall.collaborative"}}

	factory := DefaultFactory(nil, nil, nil)
	if _, err := cfg.BuildPipeline(factory); err == nil {
		t.Errorf("unknown node type must fail the build")
	}
}

func TestRegistry_RegisterAndValidate(t *testing.T) {
	Register("test.noop", func(map[string]interface{}) (pipeline.Node, error) {
		return &rerank.TopNNode{}, nil
	})

	found := false
	for _, typ := range SupportedTypes() {
		if typ == "test.noop" {
			found = true
		}
	}
	if !found {
		t.Fatalf("registered type missing from SupportedTypes: %v", SupportedTypes())
	}

	good := &pipeline.Config{}
	good.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "test.noop"}}
	if err := ValidatePipelineConfig(good); err != nil {
		t.Errorf("validate registered type: %v", err)
	}

	bad := &pipeline.Config{}
	bad.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "never.registered"}}
	if err := ValidatePipelineConfig(bad); err == nil {
		t.Errorf("unregistered type must fail validation")
	}

	p, err := Factory().Build("test.noop", nil)
	if err != nil || p == nil {
		t.Errorf("Factory().Build = %v, %v", p, err)
	}
}
