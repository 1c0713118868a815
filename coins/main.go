package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/devries/synacor/internal/logging"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type Coin struct {
	Name  string
	Value int
}

// Values read off each coin's face.
var coins = []Coin{
	{"red", 2},
	{"corroded", 3},
	{"shiny", 5},
	{"concave", 7},
	{"blue", 9},
}

var ErrNoSolution = errors.New("no coin order satisfies the equation")

// equation is the monument's _ + _ * _^2 + _^3 - _.
func equation(a, b, c, d, e int) int {
	return a + b*c*c + d*d*d - e
}

// solve tries every order of the five coins, lexicographic by position in
// set, and returns the first one for which the equation yields target.
func solve(set []Coin, target int) ([]Coin, error) {
	if len(set) != 5 {
		return nil, fmt.Errorf("need 5 coins, got %d", len(set))
	}

	idx := []int{0, 1, 2, 3, 4}
	for {
		v := equation(set[idx[0]].Value, set[idx[1]].Value, set[idx[2]].Value, set[idx[3]].Value, set[idx[4]].Value)
		if v == target {
			order := make([]Coin, len(idx))
			for i, j := range idx {
				order[i] = set[j]
			}
			return order, nil
		}
		if !nextPermutation(idx) {
			return nil, ErrNoSolution
		}
	}
}

// nextPermutation rearranges p into its lexicographic successor and
// reports false once p is the last permutation.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	flags := pflag.NewFlagSet("coins", pflag.ContinueOnError)
	target := flags.IntP("target", "t", 399, "value the equation must produce")
	logLevel := flags.String("log-level", "info", "debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coins: %s\n", err)
		return 2
	}
	defer logger.Sync()

	order, err := solve(coins, *target)
	if err != nil {
		logger.Error("no solution found", zap.Int("target", *target), zap.Error(err))
		return 1
	}

	names := make([]string, len(order))
	for i, c := range order {
		names[i] = c.Name
	}
	logger.Info("solution found", zap.Int("target", *target), zap.Strings("order", names))
	for _, n := range names {
		fmt.Fprintf(stdout, "use %s coin\n", n)
	}
	return 0
}
