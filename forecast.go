package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pandemic-deck/config"
	"pandemic-deck/dto"
	"pandemic-deck/service"
)

func newForecastCmd(envFile *string) *cobra.Command {
	var draws int
	var epidemic bool
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print infection draw probabilities for the stored deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			logger, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, closeStore, err := openStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			session := service.NewSession(store, logger, service.WithLocale(cfg.Locale()))
			forecast, err := session.Forecast(cmd.Context(), draws, epidemic)
			if err != nil {
				return err
			}
			return renderForecast(forecast)
		},
	}
	cmd.Flags().IntVarP(&draws, "draws", "n", 2, "number of infection cards to draw")
	cmd.Flags().BoolVar(&epidemic, "epidemic", false, "forecast the draws after the next epidemic")
	return cmd
}

func renderForecast(f dto.Forecast) error {
	title := fmt.Sprintf("Revision %d: drawing %d infection cards", f.Revision, f.Draws)
	if f.AfterEpidemic {
		title += " after an epidemic"
	}
	pterm.DefaultSection.Println(title)

	header := []string{"City"}
	for d := 0; d <= f.Draws; d++ {
		header = append(header, strconv.Itoa(d))
	}
	data := pterm.TableData{header}
	for _, city := range f.Infection {
		row := []string{city.Name}
		for _, p := range city.Probs {
			row = append(row, fmt.Sprintf("%.1f%%", p.Probability*100))
		}
		data = append(data, row)
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	pterm.Info.Printfln("Epidemic within the next %d player cards: %.1f%%", f.PlayerDraws, f.PlayerEpidemicChance*100)
	return nil
}
