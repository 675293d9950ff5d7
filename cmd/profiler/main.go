// Command profiler runs a long insert workload against one container
// while serving pprof over HTTP, for attaching a profiler by hand.
package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ordinal-ds/conical/rbtree"
	"github.com/ordinal-ds/conical/skiplist"
)

var rootCmd = &cobra.Command{
	Use:   "profiler",
	Short: "Long-running insert workload with a pprof endpoint attached.",
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

		addr := getString("pprof-addr")
		go func() {
			fmt.Printf("starting pprof server on http://%s/debug/pprof/\n", addr)
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.Fatalf("pprof server failed: %v", err)
			}
		}()
		time.Sleep(100 * time.Millisecond)

		n := getInt("count")
		container := getString("container")

		fmt.Println("starting insertion workload...")
		fmt.Printf(" - items to insert: %d\n", n)
		fmt.Printf(" - container: %s\n", container)

		var length int
		switch container {
		case "skiplist":
			l := skiplist.New[int](func(a, b int) bool { return a < b })
			for i := 0; i < n; i++ {
				l.Insert(i)
			}
			length = l.Len()
		case "rbtree":
			t := rbtree.New[int](func(a, b int) bool { return a < b })
			for i := 0; i < n; i++ {
				t.Insort(i)
			}
			length = t.Len()
		default:
			fmt.Fprintf(os.Stderr, "unknown container %q (want skiplist or rbtree)\n", container)
			os.Exit(1)
		}

		fmt.Printf("finished inserting %d items, len: %d\n", n, length)
		fmt.Println("holding the process open for profiling, press ctrl+c to exit.")
		select {}
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.Int("count", 2_000_000, "Number of items to insert.")
	flags.String("container", "skiplist", "Container to profile: skiplist or rbtree.")
	flags.String("pprof-addr", "localhost:6060", "Address to serve the pprof endpoint on.")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
