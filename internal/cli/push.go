package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/pipeline"
	"github.com/matzehuels/surveycharts/pkg/source"
)

// pushCommand creates the push command, which copies a dataset directory
// into MongoDB so later renders can read it from there.
func (c *CLI) pushCommand() *cobra.Command {
	var mongoDB string

	cmd := &cobra.Command{
		Use:     "push <dataset-dir> <mongodb-uri>",
		Short:   "Store a dataset directory in MongoDB",
		Example: `  surveycharts push ./data mongodb://localhost:27017 --mongo-db survey`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !errors.IsMongoURI(args[1]) {
				return errors.New(errors.ErrCodeInvalidInput, "%q is not a mongodb:// URI", args[1])
			}
			if mongoDB == "" {
				return errors.New(errors.ErrCodeInvalidInput, "push needs --mongo-db")
			}

			ds, name, err := c.loadDataset(ctx, args[0], "")
			if err != nil {
				return err
			}

			m, err := source.DialMongo(ctx, args[1], mongoDB)
			if err != nil {
				return err
			}
			defer m.Close(ctx)

			spinner := newSpinner(ctx, "Writing to "+m.Name())
			spinner.Start()
			err = m.Save(ctx, ds)
			spinner.Stop()
			if err != nil {
				return err
			}
			c.forgetSnapshot(ctx, m)

			printSuccess("Pushed %s to %s", name, StyleHighlight.Render(m.Name()))
			printDetail("%d records", source.Records(ds))
			printNextStep("Render from MongoDB", fmt.Sprintf("%s render <mongodb-uri> --mongo-db %s", appName, mongoDB))
			return nil
		},
	}

	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "target database name")
	return cmd
}

// forgetSnapshot drops a cached copy of src so the next render sees the
// pushed data. Cache problems only warn: the push itself succeeded.
func (c *CLI) forgetSnapshot(ctx context.Context, src source.Source) {
	cfg, err := c.loadConfig()
	if err == nil {
		var runner *pipeline.Runner
		if runner, err = c.newRunner(ctx, cfg, false); err == nil {
			defer runner.Close()
			err = runner.Forget(ctx, src)
		}
	}
	if err != nil {
		c.Logger.Warn("could not drop cached dataset", "source", src.Name(), "error", err)
	}
}
