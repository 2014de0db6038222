package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/pipeline"
)

var (
	searchICPFile  string
	searchName     string
	searchIndustry string
	searchSize     string
	searchTitles   string
	searchRegion   string
	searchTech     string
	searchCSVPath  string
	searchXLSXPath string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a lead search for one profile",
	Long:  "Runs the full pipeline for a profile given as a YAML file and/or flags, printing the result envelope as JSON. Use --csv or --xlsx to additionally export the lead table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		icp, err := loadICP()
		if err != nil {
			return err
		}

		pipe, err := newPipeline()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(),
			time.Duration(cfg.Pipeline.RequestTimeoutSecs)*time.Second)
		defer cancel()

		env, err := pipe.Run(ctx, icp)
		if err != nil {
			return eris.Wrap(err, "lead search failed")
		}

		if searchCSVPath != "" {
			f, err := os.Create(searchCSVPath)
			if err != nil {
				return eris.Wrapf(err, "failed to create %s", searchCSVPath)
			}
			defer f.Close()
			if err := pipeline.ExportCSV(f, env.Leads); err != nil {
				return err
			}
		}
		if searchXLSXPath != "" {
			if err := pipeline.ExportXLSX(searchXLSXPath, env.Leads); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	},
}

// loadICP assembles the profile from the YAML file, with flags taking
// precedence over file values.
func loadICP() (model.ICP, error) {
	var icp model.ICP
	if searchICPFile != "" {
		data, err := os.ReadFile(searchICPFile)
		if err != nil {
			return icp, eris.Wrapf(err, "failed to read %s", searchICPFile)
		}
		if err := yaml.Unmarshal(data, &icp); err != nil {
			return icp, eris.Wrapf(err, "failed to parse %s", searchICPFile)
		}
	}

	overrideField(&icp.Name, searchName)
	overrideField(&icp.Industry, searchIndustry)
	overrideField(&icp.CompanySize, searchSize)
	overrideField(&icp.TargetJobTitles, searchTitles)
	overrideField(&icp.GeographicRegion, searchRegion)
	overrideField(&icp.TechnologyUsed, searchTech)
	return icp, nil
}

func overrideField(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func init() {
	searchCmd.Flags().StringVar(&searchICPFile, "icp", "", "path to a YAML profile file")
	searchCmd.Flags().StringVar(&searchName, "name", "", "profile name")
	searchCmd.Flags().StringVar(&searchIndustry, "industry", "", "target industry")
	searchCmd.Flags().StringVar(&searchSize, "size", "", "target company size, e.g. \"50-200\"")
	searchCmd.Flags().StringVar(&searchTitles, "titles", "", "comma-separated target job titles")
	searchCmd.Flags().StringVar(&searchRegion, "region", "", "target geographic region")
	searchCmd.Flags().StringVar(&searchTech, "tech", "", "target technology stack")
	searchCmd.Flags().StringVar(&searchCSVPath, "csv", "", "also export leads to a CSV file")
	searchCmd.Flags().StringVar(&searchXLSXPath, "xlsx", "", "also export leads to an XLSX workbook")
	rootCmd.AddCommand(searchCmd)
}
