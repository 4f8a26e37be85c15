package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	norm := Params{}.Normalize()
	if norm.Page != 1 {
		t.Fatalf("expected page 1 got %d", norm.Page)
	}
	if norm.PerPage != DefaultPerPage {
		t.Fatalf("expected default per_page got %d", norm.PerPage)
	}
}

func TestNormalizeCapsPerPage(t *testing.T) {
	norm := Params{Page: 2, PerPage: 5000}.Normalize()
	if norm.PerPage != MaxPerPage {
		t.Fatalf("expected cap %d got %d", MaxPerPage, norm.PerPage)
	}
}

func TestOffsetAndLimit(t *testing.T) {
	p := Params{Page: 3, PerPage: 20}
	if p.Offset() != 40 {
		t.Fatalf("expected offset 40 got %d", p.Offset())
	}
	if p.Limit() != 20 {
		t.Fatalf("expected limit 20 got %d", p.Limit())
	}
}

func TestMeta(t *testing.T) {
	meta := Params{Page: 2, PerPage: 10}.Meta(25)
	if meta.CurrentPage != 2 || meta.PerPage != 10 || meta.Total != 25 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta.LastPage != 3 {
		t.Fatalf("expected last_page 3 got %d", meta.LastPage)
	}
}

func TestMetaEmptyResult(t *testing.T) {
	meta := Params{}.Meta(0)
	if meta.LastPage != 1 {
		t.Fatalf("empty result should report last_page 1, got %d", meta.LastPage)
	}
}
