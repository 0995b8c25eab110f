package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mkvscan/internal/media/info"
)

func newTierCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "tier <WIDTHxHEIGHT>...",
		Short:       "Classify resolutions into quality tiers without probing",
		Example:     "  mkvscan tier 3840x2160 1920x1080",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				width, height, err := parseResolution(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", arg, info.Classify(width, height))
			}
			return nil
		},
	}
}

func parseResolution(value string) (int, int, error) {
	widthPart, heightPart, found := strings.Cut(strings.ToLower(strings.TrimSpace(value)), "x")
	if !found {
		return 0, 0, fmt.Errorf("invalid resolution %q (expected WIDTHxHEIGHT)", value)
	}
	width, errW := strconv.Atoi(widthPart)
	height, errH := strconv.Atoi(heightPart)
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("invalid resolution %q (expected WIDTHxHEIGHT)", value)
	}
	return width, height, nil
}
