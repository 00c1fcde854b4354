// rowgen generates a demo customers dataset (JSONL) plus a matching
// scenario catalog, for exercising gridlens without a real backend:
//
//	rowgen -n 500 -out customers.jsonl -catalog customers.yaml
//	rowgen -out customers.jsonl -append -rate 2   # feed follow mode
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"gridlens/internal/source"
)

const catalogYAML = `title: Customers
baseURL: https://admin.example.com
suggestKey: customerId
pageSizes: [10, 25, 50, 100]
columns:
  - key: customerId
  - key: name
  - key: domain
  - key: active
    kind: bool
  - key: tier
  - key: region
  - key: balance
    kind: number
  - key: openTasks
    kind: number
actions:
  - name: Sales overview
    targetDomain: sales
    targetKey: overview
  - name: Billing history
    targetDomain: billing
    targetKey: history
    mappings:
      - source: customerId
        target: accountId
entities:
  - key: C0001
    label: Acme Logistics
    tags: [enterprise]
  - key: C0002
    label: Borealis Foods
    tags: [standard]
`

func main() {
	n := flag.Int("n", 500, "number of rows to generate")
	out := flag.String("out", "customers.jsonl", "dataset output path")
	catOut := flag.String("catalog", "", "also write a matching catalog to this path")
	appendMode := flag.Bool("append", false, "append rows forever (for -follow demos)")
	rate := flag.Int("rate", 1, "rows per second in append mode")
	flag.Parse()

	if *catOut != "" {
		if err := os.WriteFile(*catOut, []byte(catalogYAML), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *catOut)
	}

	if *appendMode {
		if err := appendForever(*out, *rate); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	if err := writeRows(*out, *n); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rows to %s\n", *n, *out)
}

func writeRows(path string, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	for _, row := range source.DemoRows(n) {
		b, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func appendForever(path string, rate int) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if rate < 1 {
		rate = 1
	}
	pool := source.DemoRows(1000)
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	i := 0
	for range ticker.C {
		b, err := json.Marshal(pool[i%len(pool)])
		if err != nil {
			return err
		}
		if _, err := f.Write(append(b, '\n')); err != nil {
			return err
		}
		i++
	}
	return nil
}
