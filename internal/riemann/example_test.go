package riemann

import (
	"context"
	"errors"
	"fmt"
)

// ExampleLeftSum integrates x² over [0, 4] with four unit-width rectangles.
func ExampleLeftSum() {
	area, err := LeftSum(Square, 0, 4, 4)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(area)
	// Output: 14
}

// ExampleParallelLeftSum shows that an invalid partition is reported as an
// error instead of a zero area.
func ExampleParallelLeftSum() {
	_, err := ParallelLeftSum(Square, 0, 4, 0, 4)
	fmt.Println(errors.Is(err, ErrInvalidPartition))
	// Output: true
}

// ExampleDefaultFactory runs every registered calculator on the same problem.
func ExampleDefaultFactory() {
	factory := NewDefaultFactory()
	p := NewProblem(Square, 0, 4, 4)
	for _, name := range factory.List() {
		calc, _ := factory.Get(name)
		area, err := calc.Calculate(context.Background(), nil, 0, p, Options{Threads: 2})
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%s: %g\n", calc.Name(), area)
	}
	// Output:
	// Parallel: 14
	// Serial: 14
}
