package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mlvaren/tonic/internal/modules/mixer/application/usecases"
	"github.com/mlvaren/tonic/internal/modules/mixer/domain"
	"github.com/mlvaren/tonic/internal/modules/mixer/infrastructure"
)

var (
	mixDatabasePath  string
	mixMood          string
	mixGenre         string
	mixDuration      float64
	mixDiversity     string
	mixSeeds         []string
	mixIncludeRecent bool
	mixExcludeSkip   bool
	mixSaveName      string
)

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Generate a smart mix from the local library",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := gorm.Open(sqlite.Open(mixDatabasePath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		store, err := infrastructure.NewGormStore(db)
		if err != nil {
			return err
		}

		features := infrastructure.NewFeatureCache(infrastructure.NewHeuristicExtractor())
		mixes := usecases.NewMixService(store, features, store)

		req := domain.MixRequest{
			Genre:                 mixGenre,
			TargetDurationMinutes: mixDuration,
			Diversity:             domain.DiversityLevel(mixDiversity),
			IncludeRecentlyPlayed: mixIncludeRecent,
			ExcludeSkipped:        mixExcludeSkip,
		}
		if mixMood != "" {
			mood, ok := domain.ParseMood(mixMood)
			if !ok {
				return fmt.Errorf("unknown mood %q", mixMood)
			}
			req.Mood = mood
		}
		for _, id := range mixSeeds {
			req.SeedTrackIDs = append(req.SeedTrackIDs, domain.TrackID(id))
		}

		result, err := mixes.GenerateSmartMix(cmd.Context(), req)
		if err != nil {
			return err
		}

		if len(result.Tracks) == 0 {
			fmt.Println(result.Reason)
			return nil
		}

		fmt.Printf("%s (%d tracks, %s)\n\n",
			result.Description, len(result.Tracks), result.TotalDuration())

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"#", "Title", "Artist", "Genre", "Duration"})
		for i, track := range result.Tracks {
			table.Append([]string{
				strconv.Itoa(i + 1),
				track.Title,
				track.Artist,
				track.Genre,
				track.FormattedDuration(),
			})
		}
		table.Render()

		if mixSaveName != "" {
			playlist, err := mixes.SaveMix(cmd.Context(), mixSaveName, result)
			if err != nil {
				return err
			}
			fmt.Printf("\nsaved as playlist %q (%s)\n", playlist.Name, playlist.ID)
		}

		return nil
	},
}

func init() {
	mixCmd.Flags().StringVar(&mixDatabasePath, "db", "tonic.db", "path to the library database")
	mixCmd.Flags().StringVar(&mixMood, "mood", "", "target mood (energetic, chill, focus, workout, sleep)")
	mixCmd.Flags().StringVar(&mixGenre, "genre", "", "genre substring filter")
	mixCmd.Flags().Float64Var(&mixDuration, "duration", 0, "target duration in minutes (0 caps at 50 tracks)")
	mixCmd.Flags().StringVar(&mixDiversity, "diversity", "low", "diversity level (low, medium, high)")
	mixCmd.Flags().StringSliceVar(&mixSeeds, "seed", nil, "seed track ids")
	mixCmd.Flags().BoolVar(&mixIncludeRecent, "include-recent", false, "boost frequently played tracks")
	mixCmd.Flags().BoolVar(&mixExcludeSkip, "exclude-skipped", false, "drop never-played tracks")
	mixCmd.Flags().StringVar(&mixSaveName, "save", "", "save the mix as a playlist with this name")
}
