package aggregate

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"employee-api/internal/domain"
)

func emp(name string, salary int) domain.Employee {
	return domain.Employee{ID: name, Name: name, Salary: domain.IntPtr(salary)}
}

func noSalary(name string) domain.Employee {
	return domain.Employee{ID: name, Name: name}
}

var toms = []domain.Employee{emp("Tom Daryl", 75000), emp("Tom Finsey", 80000)}

func TestScenarioTwoToms(t *testing.T) {
	assert.Equal(t, 80000, HighestSalary(toms))
	assert.Equal(t, []string{"Tom Finsey", "Tom Daryl"}, TopNEarners(toms, DefaultTopN))
	assert.Equal(t, toms, NameSearch(toms, "tom"))
}

func TestScenarioEmpty(t *testing.T) {
	for _, in := range [][]domain.Employee{nil, {}} {
		assert.Equal(t, 0, HighestSalary(in))
		assert.Empty(t, TopNEarners(in, DefaultTopN))
		assert.NotNil(t, TopNEarners(in, DefaultTopN))
		assert.Empty(t, NameSearch(in, "x"))
		assert.NotNil(t, NameSearch(in, "x"))
	}
}

func TestHighestSalarySkipsMissing(t *testing.T) {
	assert.Equal(t, 0, HighestSalary([]domain.Employee{noSalary("a"), noSalary("b")}))
	assert.Equal(t, 10, HighestSalary([]domain.Employee{noSalary("a"), emp("b", 10), noSalary("c")}))
}

func TestTopNEarnersFiltersAndLimits(t *testing.T) {
	in := []domain.Employee{
		emp("Reid Graham", 90155),
		emp("Tom Lang", 208820),
		noSalary("Ghost"),
		{ID: "nameless", Salary: domain.IntPtr(999999)},
		emp("Titus Rice", 208820),
		emp("Jim Donga", 64350),
	}

	assert.Equal(t, []string{"Tom Lang", "Titus Rice", "Reid Graham", "Jim Donga"}, TopNEarners(in, 10))
	assert.Equal(t, []string{"Tom Lang", "Titus Rice"}, TopNEarners(in, 2))
	assert.Empty(t, TopNEarners(in, 0))
}

func TestTopNEarnersStableOnTies(t *testing.T) {
	in := []domain.Employee{emp("a", 5), emp("b", 7), emp("c", 5), emp("d", 7), emp("e", 5)}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, TopNEarners(in, 10))
}

func TestTopNEarnersDoesNotMutateInput(t *testing.T) {
	in := []domain.Employee{emp("low", 1), emp("high", 2)}
	_ = TopNEarners(in, 10)
	assert.Equal(t, "low", in[0].Name)
}

func TestNameSearchCaseInsensitive(t *testing.T) {
	in := []domain.Employee{emp("Reid Graham", 1), emp("GRAHAM Bell", 2), emp("Tom", 3), {ID: "x"}}

	got := NameSearch(in, "gRaHaM")
	assert.Equal(t, []domain.Employee{in[0], in[1]}, got)
	assert.Empty(t, NameSearch(in, "zzz"))
}

func TestNameSearchUnicodeFolding(t *testing.T) {
	strasse := domain.Employee{ID: "1", Name: "Hans Straße"}
	odysseus := domain.Employee{ID: "2", Name: "Οδυσσευς"}
	in := []domain.Employee{strasse, odysseus}

	cases := map[string][]domain.Employee{
		"STRASSE":  {strasse},
		"straße":   {strasse},
		"ΟΔΥΣΣΕΥΣ": {odysseus},
		"σευς":     {odysseus},
		"Mueller":  {},
	}
	for q, want := range cases {
		assert.Equal(t, want, NameSearch(in, q), q)
	}
}

// Properties from random lists.
func TestAggregationProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		var in []domain.Employee
		size := r.Intn(30)
		for i := 0; i < size; i++ {
			e := domain.Employee{ID: fmt.Sprint(i)}
			if r.Intn(5) > 0 {
				e.Name = fmt.Sprintf("Name%d", r.Intn(8))
			}
			if r.Intn(4) > 0 {
				e.Salary = domain.IntPtr(r.Intn(6) + 1)
			}
			in = append(in, e)
		}
		n := r.Intn(12)

		// highest
		want := 0
		for _, e := range in {
			if e.Salary != nil && *e.Salary > want {
				want = *e.Salary
			}
		}
		assert.Equal(t, want, HighestSalary(in))

		// top n: length, ordering, stability
		var eligible []domain.Employee
		for _, e := range in {
			if e.Salary != nil && e.Name != "" {
				eligible = append(eligible, e)
			}
		}
		top := TopNEarners(in, n)
		assert.Len(t, top, min(n, len(eligible)))
		var expected []string
		for s := 6; s >= 1 && len(expected) < len(top); s-- {
			for _, e := range eligible {
				if *e.Salary == s && len(expected) < len(top) {
					expected = append(expected, e.Name)
				}
			}
		}
		if len(top) > 0 {
			assert.Equal(t, expected, top)
		}

		// search
		q := fmt.Sprintf("nAmE%d", r.Intn(8))
		var match []domain.Employee
		for _, e := range in {
			if e.Name != "" && strings.Contains(strings.ToLower(e.Name), strings.ToLower(q)) {
				match = append(match, e)
			}
		}
		got := NameSearch(in, q)
		if len(match) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, match, got)
		}
	}
}
