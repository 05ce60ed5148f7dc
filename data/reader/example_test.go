package reader_test

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-trace/data/reader"
)

func ExampleReadFrom() {
	in := "% t\tV\n0\t0\n1\t1\n2\t0\n3\t-1\n"

	m, err := reader.ReadFrom(strings.NewReader(in), reader.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}

	x, y, _ := m.Series()
	fmt.Println(x)
	fmt.Println(y)
	// Output:
	// [0 1 2 3]
	// [0 1 0 -1]
}

func ExampleConfig_structured() {
	cfg := reader.DefaultConfig()
	cfg.StructuredFields = true

	m, _ := reader.ReadFrom(strings.NewReader("delay\tsignal\n0\t1.5\n1\t\n"), cfg)
	signal, _ := m.Column("signal")
	fmt.Println(m.Names, signal)
	// Output:
	// [delay signal] [1.5 NaN]
}
