package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/tancalc/internal/config"
	"github.com/danielpatrickdp/tancalc/internal/verify"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	method := flag.String("method", "", "tangent method to check (overrides config)")
	tol := flag.Float64("tolerance", 0, "max deviation for value checks (default 1e-6)")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if *method != "" {
		cfg.Method = *method
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
	}

	vc := verify.DefaultConfig()
	if *tol > 0 {
		vc.Tolerance = *tol
	}
	res := verify.NewHarness(vc, cfg.Evaluator()).Run()

	if *jsonOut {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal json: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("Method: %s\n\n", cfg.Method)
		fmt.Printf("%-20s  %12s  %s\n", "Check", "Value", "Pass")
		for _, m := range res.Metrics {
			mark := "ok"
			if !m.Pass {
				mark = "FAIL"
			}
			fmt.Printf("%-20s  %12.4g  %s\n", m.Name, m.Value, mark)
		}
		fmt.Printf("\n%s\n", res.Reason)
	}

	if !res.Passed {
		os.Exit(1)
	}
}

// #endregion main
