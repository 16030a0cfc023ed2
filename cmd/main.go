package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"roster/internal/config"
	"roster/internal/database"
	"roster/internal/handler"
	"roster/internal/service"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always happens.
func run() int {
	storageFlag := flag.String("storage", "", "Storage backend (file, sqlite, postgres)")
	dataFlag := flag.String("data", "", "Data file for file or sqlite storage")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if !validCommand(args) {
		usage()
		return 2
	}

	// Load configuration
	cfg := config.Load()
	if *storageFlag != "" {
		cfg.Storage = *storageFlag
	}
	if *dataFlag != "" {
		cfg.DataFile = *dataFlag
	}
	cfg.ApplyDefaults()

	// Open storage
	repo, err := database.Open(cfg)
	if err != nil {
		log.Println("Failed to open storage:", err)
		return 1
	}
	defer repo.Close()

	// Initialize services
	studentService := service.NewStudentService(repo)
	if err := studentService.Load(); err != nil {
		log.Printf("Failed to load students, continuing with %d recovered: %v\n", studentService.Count(), err)
	}
	importService := service.NewImportService(studentService)

	if len(args) == 0 {
		menu := handler.NewMenuHandler(studentService, os.Stdin, os.Stdout)
		if err := menu.Run(); err != nil {
			log.Println("Error reading input:", err)
		}
		return 0
	}

	switch args[0] {
	case "import":
		result, err := importService.ImportCSV(args[1])
		if result != nil {
			fmt.Printf("Imported %d students from %s (%d skipped).\n", result.Imported, result.FileName, result.Skipped)
		}
		if err != nil {
			log.Println("Import failed:", err)
			return 1
		}
	case "export":
		n, err := importService.ExportCSV(args[1])
		if err != nil {
			log.Println("Export failed:", err)
			return 1
		}
		fmt.Printf("Exported %d students to %s.\n", n, args[1])
	}
	return 0
}

func validCommand(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "import", "export":
		return len(args) == 2
	}
	return false
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: roster [flags] [command]

Commands:
  (none)              start the interactive menu
  import <file.csv>   append students from a CSV file (name,roll_number,grade)
  export <file.csv>   write all students to a CSV file

Flags:
`)
	flag.PrintDefaults()
}
