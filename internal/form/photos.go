package form

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const MaxPhotos = 4

type PhotoEntry struct {
	ImageData    string
	OriginalName string
}

// PhotoFile is one user-selected file before decoding.
type PhotoFile struct {
	Name string
	Data []byte
}

// AddResult reports what AddPhotos kept. Notice is set when part of the
// batch was dropped because of the limit.
type AddResult struct {
	Added   int
	Dropped int
	Notice  string
}

// AddPhotos accepts at most MaxPhotos-len(d.Photos) files from the front of
// files. They are decoded concurrently; once every decode has finished the
// entries are appended in selection order. If any decode fails the draft is
// left unchanged.
func (d *Draft) AddPhotos(ctx context.Context, files []PhotoFile) (AddResult, error) {
	remaining := MaxPhotos - len(d.Photos)
	if remaining < 0 {
		remaining = 0
	}
	take := min(remaining, len(files))
	accepted := files[:take]

	res := AddResult{Added: take, Dropped: len(files) - take}
	if res.Dropped > 0 {
		res.Notice = fmt.Sprintf("최대 %d장까지 등록 가능합니다 (%d장 추가됨)", MaxPhotos, take)
	}
	if take == 0 {
		return res, nil
	}

	entries := make([]PhotoEntry, take)
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range accepted {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := encodePhoto(f.Data)
			if err != nil {
				return fmt.Errorf("photo %q: %w", f.Name, err)
			}
			entries[i] = PhotoEntry{ImageData: data, OriginalName: f.Name}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AddResult{}, err
	}

	d.Photos = append(d.Photos, entries...)
	return res, nil
}

// RemovePhoto deletes the photo at i; later photos move up one place.
func (d *Draft) RemovePhoto(i int) error {
	if i < 0 || i >= len(d.Photos) {
		return fmt.Errorf("photo index %d out of range", i)
	}
	d.Photos = append(d.Photos[:i:i], d.Photos[i+1:]...)
	return nil
}

// Layout is the arrangement used for a given number of photos.
type Layout struct {
	Count int
	Class string
	Label string
}

var layouts = [MaxPhotos + 1]Layout{
	{},
	{Count: 1, Class: "grid-1", Label: "전체 1장"},
	{Count: 2, Class: "grid-2", Label: "좌우 2등분"},
	{Count: 3, Class: "grid-3", Label: "메인+서브 3장"},
	{Count: 4, Class: "grid-4", Label: "2×2 4등분"},
}

// LayoutFor returns the arrangement for n photos; ok is false outside 1..4.
func LayoutFor(n int) (Layout, bool) {
	if n < 1 || n > MaxPhotos {
		return Layout{}, false
	}
	return layouts[n], true
}
