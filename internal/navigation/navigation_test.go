package navigation

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"comix/internal/source"
)

type recorder struct {
	indices []int
}

func (r *recorder) Request(index int, _ source.ImagePath) {
	r.indices = append(r.indices, index)
}

func listing(n int) []source.ImagePath {
	paths := make([]source.ImagePath, n)
	for i := range paths {
		paths[i] = source.ImagePath{Path: fmt.Sprintf("img%02d.png", i)}
	}
	return paths
}

func TestNewEmpty(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("New(nil) error = %v, want ErrEmpty", err)
	}
}

func TestWrapAround(t *testing.T) {
	for _, n := range []int{2, 3, 7} {
		t.Run(fmt.Sprintf("%d images", n), func(t *testing.T) {
			s, err := New(listing(n), nil)
			if err != nil {
				t.Fatal(err)
			}
			start := s.Select(n / 2)

			for i := 0; i < n; i++ {
				s.Next()
			}
			if s.Index() != start {
				t.Errorf("after %d Next: index %d, want %d", n, s.Index(), start)
			}
			for i := 0; i < n; i++ {
				s.Prev()
			}
			if s.Index() != start {
				t.Errorf("after %d Prev: index %d, want %d", n, s.Index(), start)
			}
		})
	}
}

func TestSelectRequestsLoad(t *testing.T) {
	rec := &recorder{}
	s, err := New(listing(5), rec)
	if err != nil {
		t.Fatal(err)
	}

	s.Select(3)
	s.Next()
	s.Next()
	s.Prev()
	s.Last()
	s.First()
	s.Select(-4)
	s.Select(99)

	want := []int{3, 4, 0, 4, 4, 0, 0, 4}
	if !reflect.DeepEqual(rec.indices, want) {
		t.Errorf("requests = %v, want %v", rec.indices, want)
	}
	if s.Current().Path != "img04.png" {
		t.Errorf("Current = %s, want img04.png", s.Current().Path)
	}
}

func TestSingleImageDisablesNavigation(t *testing.T) {
	rec := &recorder{}
	s, err := New(listing(1), rec)
	if err != nil {
		t.Fatal(err)
	}
	if s.Enabled() {
		t.Fatal("single-image store reports navigation enabled")
	}

	s.Next()
	s.Prev()
	s.First()
	s.Last()

	if s.Index() != 0 {
		t.Errorf("index = %d, want 0", s.Index())
	}
	if len(rec.indices) != 0 {
		t.Errorf("navigation issued requests %v", rec.indices)
	}
}

func TestPath(t *testing.T) {
	s, err := New(listing(2), nil)
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := s.Path(1); !ok || p.Path != "img01.png" {
		t.Errorf("Path(1) = %v, %v", p, ok)
	}
	if _, ok := s.Path(2); ok {
		t.Error("Path(2) reported ok")
	}
}
