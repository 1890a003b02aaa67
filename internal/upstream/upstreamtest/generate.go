package upstreamtest

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"employee-api/internal/domain"
)

var (
	firstNames = []string{"Reid", "Tom", "Titus", "Jim", "Ada", "Grace", "Linus", "Mara", "Noor", "Omar", "Priya", "Quinn"}
	lastNames  = []string{"Graham", "Lang", "Rice", "Donga", "Finsey", "Daryl", "Hopper", "Okafor", "Silva", "Tanaka"}
	titles     = []string{"Construction Producer", "IT Consultant", "Construction Field Staff", "Accountant", "Engineer", "Designer"}
)

// Generate builds one plausible employee record from rnd.
func Generate(rnd *rand.Rand) domain.Employee {
	first := firstNames[rnd.Intn(len(firstNames))]
	last := lastNames[rnd.Intn(len(lastNames))]
	id, err := uuid.NewRandomFromReader(rnd)
	if err != nil {
		id = uuid.New()
	}
	return domain.Employee{
		ID:     id.String(),
		Name:   first + " " + last,
		Salary: domain.IntPtr(30000 + rnd.Intn(220000)),
		Age:    16 + rnd.Intn(60),
		Title:  titles[rnd.Intn(len(titles))],
		Email:  fmt.Sprintf("%s.%s@company.com", strings.ToLower(first), strings.ToLower(last)),
	}
}
