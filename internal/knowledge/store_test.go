package knowledge

import "testing"

func testStore() *Store {
	return NewStore(DefaultEntries())
}

func TestSearch(t *testing.T) {
	s := testStore()

	t.Run("finds emergency fund entry", func(t *testing.T) {
		results := s.Search("how big should an emergency fund be", 3, 0.2)
		if len(results) == 0 {
			t.Fatal("expected at least one result")
		}
		if results[0].Entry.ID != "kb-emergency-fund" {
			t.Errorf("top result = %s, want kb-emergency-fund", results[0].Entry.ID)
		}
	})

	t.Run("results sorted descending", func(t *testing.T) {
		results := s.Search("compound interest and savings", 5, 0)
		for i := 1; i < len(results); i++ {
			if results[i].Score > results[i-1].Score {
				t.Fatalf("results not sorted: %f before %f", results[i-1].Score, results[i].Score)
			}
		}
	})

	t.Run("respects topK", func(t *testing.T) {
		results := s.Search("money savings interest budget", 2, 0)
		if len(results) > 2 {
			t.Errorf("got %d results, want at most 2", len(results))
		}
	})

	t.Run("min score filters noise", func(t *testing.T) {
		results := s.Search("quantum entanglement teleportation", 5, 0.35)
		if len(results) != 0 {
			t.Errorf("got %d results for off-topic query, want 0", len(results))
		}
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		if results := s.Search("", 5, 0); results != nil {
			t.Errorf("got %v, want nil", results)
		}
	})
}

func TestAdd(t *testing.T) {
	s := NewStore(nil)
	if s.Len() != 0 {
		t.Fatalf("new store Len = %d, want 0", s.Len())
	}
	s.Add(Entry{ID: "kb-test", Question: "what is a test entry", Answer: "a test entry"})
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	results := s.Search("test entry", 1, 0.1)
	if len(results) != 1 || results[0].Entry.ID != "kb-test" {
		t.Errorf("Search = %v, want the added entry", results)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("What's my Credit UTILIZATION?!")
	want := map[string]struct{}{"credit": {}, "utilization": {}, "s": {}}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %v, want keys of %v", got, want)
	}
	for _, tok := range got {
		if _, ok := want[tok]; !ok {
			t.Errorf("unexpected token %q", tok)
		}
	}
}
