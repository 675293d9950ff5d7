// Command bench runs a lightweight insert microbenchmark against either
// container, reporting wall-clock duration, ns/op, and bytes allocated
// (the change in runtime.MemStats.TotalAlloc).
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ordinal-ds/conical/rbtree"
	"github.com/ordinal-ds/conical/skiplist"
)

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Insert microbenchmark for the skiplist and rbtree containers.",
	Run: func(cmd *cobra.Command, args []string) {
		var flags *pflag.FlagSet = cmd.Flags()
		getInt := func(name string) int {
			v, err := flags.GetInt(name)
			if err != nil {
				panic(err)
			}
			return v
		}
		getString := func(name string) string {
			v, err := flags.GetString(name)
			if err != nil {
				panic(err)
			}
			return v
		}

		n := getInt("count")
		container := getString("container")
		seed := uint64(getInt("seed"))

		keys := make([]int, n)
		r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for i := range keys {
			keys[i] = r.Int()
		}

		runtime.GC()
		time.Sleep(50 * time.Millisecond)

		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		start := time.Now()

		var length int
		switch container {
		case "skiplist":
			l := skiplist.New[int](func(a, b int) bool { return a < b })
			for _, k := range keys {
				l.Insert(k)
			}
			length = l.Len()
		case "rbtree":
			t := rbtree.New[int](func(a, b int) bool { return a < b })
			for _, k := range keys {
				t.Insort(k)
			}
			length = t.Len()
		default:
			fmt.Fprintf(os.Stderr, "unknown container %q (want skiplist or rbtree)\n", container)
			os.Exit(1)
		}

		dur := time.Since(start)
		runtime.ReadMemStats(&after)

		nsPerOp := float64(dur.Nanoseconds()) / float64(n)
		allocDiff := int64(after.TotalAlloc) - int64(before.TotalAlloc)

		fmt.Printf("container: %s\n", container)
		fmt.Printf("count: %d\n", n)
		fmt.Printf("duration: %s, ns/op: %.1f, TotalAlloc diff: %d bytes, len: %d\n",
			dur, nsPerOp, allocDiff, length)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.Int("count", 200000, "Number of items to insert.")
	flags.String("container", "skiplist", "Container to benchmark: skiplist or rbtree.")
	flags.Int("seed", 1, "Seed for the key-generating PRNG.")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
