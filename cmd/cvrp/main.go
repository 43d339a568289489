package main

import (
	"context"
	"cvrp-route-service/internal/adapters/distance"
	"cvrp-route-service/internal/adapters/render"
	"cvrp-route-service/internal/adapters/tsplib"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/services"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// cvrp solves one instance file with every heuristic and prints the
// distances next to the reference solution, if one is found.
func main() {
	instancePath := flag.String("instance", "", "path to a CVRPLIB .vrp file (required)")
	solutionPath := flag.String("solution", "", "reference .sol file (default: sibling of -instance)")
	outDir := flag.String("out-dir", "", "write an .svg and a .sol per solution into this directory")
	algos := flag.String("algorithms", strings.Join(services.Algorithms(), ","), "comma-separated heuristics to run")
	flag.Parse()

	if strings.TrimSpace(*instancePath) == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), os.Stdout, *instancePath, *solutionPath, *outDir, *algos); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, out io.Writer, instancePath, solutionPath, outDir, algos string) error {
	log.Printf("Loading VRP data file: %s", instancePath)
	inst, err := tsplib.LoadInstanceFile(instancePath)
	if err != nil {
		return err
	}

	if solutionPath == "" {
		candidate := strings.TrimSuffix(instancePath, filepath.Ext(instancePath)) + ".sol"
		if _, err := os.Stat(candidate); err == nil {
			solutionPath = candidate
		}
	}
	if solutionPath != "" {
		ref, _, err := tsplib.LoadSolutionFile(solutionPath)
		if err != nil {
			return err
		}
		inst.Reference = ref
	}

	if err := inst.Validate(); err != nil {
		return fmt.Errorf("instance %q: %w", inst.Name, err)
	}

	dist, err := distance.NewMatrixModel().Build(ctx, inst)
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if len(inst.Reference) > 0 {
		if err := services.CheckSolution(inst, inst.Reference); err != nil {
			return fmt.Errorf("reference solution: %w", err)
		}
		best := services.TotalDistance(inst, dist, inst.Reference)
		fmt.Fprintf(out, "Best VRP Distance: %v\n", best)
		if err := writeOutputs(outDir, inst, "reference", inst.Reference, best, "Optimal Solution"); err != nil {
			return err
		}
	}

	for _, algo := range strings.Split(algos, ",") {
		algo = strings.TrimSpace(algo)
		if algo == "" {
			continue
		}

		runRes, err := services.Solve(ctx, inst, dist, algo)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s Heuristic Distance: %v\n", heuristicTitle(algo), runRes.TotalDistance)
		if runRes.GapPercent != nil {
			fmt.Fprintf(out, "Gap: %.2f%%\n", *runRes.GapPercent)
		}
		printRoutes(out, runRes.Routes)

		if err := writeOutputs(outDir, inst, algo, runRes.Routes, runRes.TotalDistance, heuristicTitle(algo)+" Heuristic"); err != nil {
			return err
		}
	}

	return nil
}

func heuristicTitle(algo string) string {
	switch algo {
	case services.AlgorithmNearestNeighbor:
		return "Nearest Neighbour"
	case services.AlgorithmSavings:
		return "Savings"
	default:
		return algo
	}
}

// printRoutes lists routes with 1-based labels; entries stay node indices.
func printRoutes(out io.Writer, sol domain.Solution) {
	for i, r := range sol {
		fmt.Fprintf(out, "Route %d: %v\n", i+1, []int(r))
	}
}

func writeOutputs(dir string, inst *domain.Instance, label string, sol domain.Solution, cost float64, title string) error {
	if dir == "" {
		return nil
	}

	base := filepath.Join(dir, inst.Name+"-"+label)

	svg, err := os.Create(base + ".svg")
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	if err := render.SVG(svg, inst, sol, title); err != nil {
		svg.Close()
		return err
	}
	if err := svg.Close(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}

	f, err := os.Create(base + ".sol")
	if err != nil {
		return fmt.Errorf("write solution: %w", err)
	}
	if err := tsplib.WriteSolution(f, sol, cost); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
