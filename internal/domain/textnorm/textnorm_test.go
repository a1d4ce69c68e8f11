package textnorm_test

import (
	"sync"
	"testing"

	"github.com/okian/podium/internal/domain/textnorm"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFold(t *testing.T) {
	Convey("Given accented, mixed-case text", t, func() {
		Convey("When folding it", func() {
			So(textnorm.Fold("  Seleção   Brasileira "), ShouldEqual, "selecao brasileira")
			So(textnorm.Fold("REVELAÇÃO"), ShouldEqual, "revelacao")
			So(textnorm.Fold("1º Lugar"), ShouldEqual, "1o lugar")
			So(textnorm.Fold(""), ShouldEqual, "")
		})

		Convey("When comparing two spellings", func() {
			So(textnorm.Equal("Campeonato Estadual", "campeonato  ESTADUAL"), ShouldBeTrue)
			So(textnorm.Equal("Sesi", "Sesc"), ShouldBeFalse)
		})
	})
}

func TestContains(t *testing.T) {
	Convey("Given a competition name", t, func() {
		name := "Convocação — Seleção do Estado de São Paulo"

		Convey("Then folded substrings match", func() {
			So(textnorm.Contains(name, "seleção do estado"), ShouldBeTrue)
			So(textnorm.Contains(name, "SELECAO DO ESTADO"), ShouldBeTrue)
			So(textnorm.Contains(name, "seleção brasileira"), ShouldBeFalse)
		})

		Convey("Then an empty needle never matches", func() {
			So(textnorm.Contains(name, ""), ShouldBeFalse)
			So(textnorm.ContainsAny(name, "", "  "), ShouldBeFalse)
		})

		Convey("Then any of several needles may match", func() {
			So(textnorm.ContainsAny(name, "mundial", "são paulo"), ShouldBeTrue)
			So(textnorm.ContainsAny("", "mundial"), ShouldBeFalse)
		})
	})
}

func TestJoin(t *testing.T) {
	Convey("Given several fields", t, func() {
		So(textnorm.Join("Nacional", "", "Copa BRASIL"), ShouldEqual, "nacional copa brasil")
	})
}

func TestFoldConcurrent(t *testing.T) {
	Convey("Given many goroutines folding at once", t, func() {
		var wg sync.WaitGroup
		results := make([]string, 64)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = textnorm.Fold("Artilheira do Campeonato Mineiro")
			}(i)
		}
		wg.Wait()

		Convey("Then every result is identical", func() {
			for _, r := range results {
				So(r, ShouldEqual, "artilheira do campeonato mineiro")
			}
		})
	})
}
