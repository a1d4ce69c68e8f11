package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/podium/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When a submission key is recorded twice", func() {
			first := d.SeenAndRecord(ctx, "p1:aa")
			second := d.SeenAndRecord(ctx, "p1:aa")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same profile changes content", func() {
			d.SeenAndRecord(ctx, "p1:aa")

			Convey("Then the new fingerprint is a new key", func() {
				So(d.SeenAndRecord(ctx, "p1:bb"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a key is unrecorded", func() {
			d.SeenAndRecord(ctx, "p1:aa")
			d.Unrecord(ctx, "p1:aa")
			d.Unrecord(ctx, "missing")

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "p1:aa"), ShouldBeFalse)
				So(dedupe.Evicted(d), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for _, k := range []string{"k1", "k2", "k3"} {
			d.SeenAndRecord(ctx, k)
		}

		Convey("When a recent key is touched and a new one added", func() {
			So(d.SeenAndRecord(ctx, "k1"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "k4"), ShouldBeFalse)

			Convey("Then the least recently seen key is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(dedupe.Evicted(d), ShouldEqual, 1)
				So(d.SeenAndRecord(ctx, "k1"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k2"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		for _, size := range []int{0, -1} {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(size))
			for i := 0; i < 1000; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i))
			}
			So(d.Size(), ShouldEqual, 1000)
			So(d.SeenAndRecord(ctx, "k-0"), ShouldBeTrue)
		}
	})
}

func TestDedupeConcurrency(t *testing.T) {
	Convey("Given concurrent submitters", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		const workers, perWorker = 10, 100

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					key := fmt.Sprintf("k-%d-%d", id, j)
					d.SeenAndRecord(context.Background(), key)
					if j%2 == 0 {
						d.Unrecord(context.Background(), key)
					}
				}
			}(i)
		}
		wg.Wait()

		Convey("Then the size reflects every record and unrecord", func() {
			So(d.Size(), ShouldEqual, workers*perWorker/2)
		})
	})
}
