package revalidate

import (
	"sync"
	"testing"
)

func TestInvalidateBumpsVersions(t *testing.T) {
	r := New()
	var seen []View
	r.Subscribe(func(v View) { seen = append(seen, v) })

	r.Invalidate(ViewOrders, ViewProducts)
	r.Invalidate(ViewOrders)

	if r.Version(ViewOrders) != 2 || r.Version(ViewProducts) != 1 || r.Version(ViewBanners) != 0 {
		t.Fatalf("unexpected versions: orders=%d products=%d banners=%d",
			r.Version(ViewOrders), r.Version(ViewProducts), r.Version(ViewBanners))
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 notifications, got %v", seen)
	}
	if want := `W/"orders-` + r.epoch + `.2"`; r.ETag(ViewOrders) != want {
		t.Errorf("etag = %s, want %s", r.ETag(ViewOrders), want)
	}
	if r.epoch == "" {
		t.Error("expected a non-empty epoch")
	}
}

func TestInvalidateConcurrent(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Invalidate(ViewBanners)
		}()
	}
	wg.Wait()
	if r.Version(ViewBanners) != 50 {
		t.Fatalf("expected 50, got %d", r.Version(ViewBanners))
	}
}
