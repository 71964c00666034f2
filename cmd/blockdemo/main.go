// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luxfi/contentblock/archive"
	"github.com/luxfi/contentblock/block"
	"github.com/luxfi/contentblock/blockcfg"
	"github.com/luxfi/contentblock/cid"
	"github.com/luxfi/contentblock/example/blockdemo"
	"github.com/luxfi/contentblock/slice"
	"github.com/luxfi/contentblock/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "blockdemo",
	Short: "Encode, select, extract, and verify a demo content-addressed block",
	Long: `blockdemo drives a single AStruct/BStruct value end to end: archive it
into a Block, select its nested.number field through both the typed Query
and reflective Selectable façades, extract an authenticated proof for it,
and verify that proof as an untrusted Slice.`,
}

func main() {
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var scratchSize int
	var maxProofSize int
	var number uint32

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the encode/select/extract/verify walkthrough",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := blockcfg.NewBuilder().
				WithScratchSize(scratchSize).
				WithMaxProofSize(maxProofSize).
				Build()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return runDemo(number, cfg)
		},
	}

	cmd.Flags().IntVar(&scratchSize, "scratch-size", blockcfg.DefaultConfig.ScratchSize, "size of the archive scratch buffer, in bytes")
	cmd.Flags().IntVar(&maxProofSize, "max-proof-size", blockcfg.DefaultConfig.MaxProofSize, "largest proof size slice.Decode will attempt to parse, in bytes")
	cmd.Flags().Uint32Var(&number, "number", 42, "value to store in nested.number before archiving")

	return cmd
}

func runDemo(number uint32, cfg blockcfg.Config) error {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer zl.Sync()
	logger := telemetry.NewLogger(zl)

	metrics, err := telemetry.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	data := blockdemo.AStruct{
		Nested: blockdemo.BStruct{Number: number},
	}

	b, err := block.EncodeWithConfig[blockdemo.AStruct](data, cfg)
	if err != nil {
		metrics.ObserveEncode(telemetry.OutcomeFailure)
		return fmt.Errorf("encode: %w", err)
	}
	metrics.ObserveEncode(telemetry.OutcomeOK)
	logger.Info("encoded block", zap.String("cid", b.Cid().String()))

	typedCID, err := selectByQuery(b.Cid())
	if err != nil {
		return fmt.Errorf("typed select: %w", err)
	}

	reflectiveCID, err := selectBySelectable(b.Cid())
	if err != nil {
		return fmt.Errorf("reflective select: %w", err)
	}

	if typedCID.Compare(reflectiveCID) != 0 {
		return fmt.Errorf("façades disagree: %s != %s", typedCID, reflectiveCID)
	}

	proof, err := b.Extract(typedCID.Start, typedCID.Len)
	if err != nil {
		metrics.ObserveExtract(telemetry.OutcomeFailure)
		return fmt.Errorf("extract: %w", err)
	}
	metrics.ObserveExtract(telemetry.OutcomeOK)

	verified, err := slice.DecodeWithConfig[uint32](typedCID, proof, cfg)
	if err != nil {
		metrics.ObserveDecode(telemetry.OutcomeFailure)
		return fmt.Errorf("verify: %w", err)
	}
	metrics.ObserveDecode(telemetry.OutcomeOK)

	view, err := verified.Deref()
	if err != nil {
		return fmt.Errorf("deref: %w", err)
	}

	got, err := view.Value()
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}

	logger.Info("verified field", zap.Uint32("number", got))
	fmt.Printf("nested.number = %d (cid %s)\n", got, typedCID)
	return nil
}

func selectByQuery(root cid.CID) (cid.CID, error) {
	q := cid.NewQuery[blockdemo.AStruct](root)

	nestedSpan, err := archive.SpanOf[blockdemo.AStruct]("Nested")
	if err != nil {
		return cid.CID{}, err
	}
	nested, err := cid.Select[blockdemo.AStruct, blockdemo.BStruct](q, nestedSpan)
	if err != nil {
		return cid.CID{}, err
	}

	numberSpan, err := archive.SpanOf[blockdemo.BStruct]("Number")
	if err != nil {
		return cid.CID{}, err
	}
	number, err := cid.Select[blockdemo.BStruct, uint32](nested, numberSpan)
	if err != nil {
		return cid.CID{}, err
	}
	return number.CID(), nil
}

func selectBySelectable(root cid.CID) (cid.CID, error) {
	nested, err := (blockdemo.AStruct{}).Field(root, "nested")
	if err != nil {
		return cid.CID{}, err
	}
	return (blockdemo.BStruct{}).Field(nested, "number")
}
