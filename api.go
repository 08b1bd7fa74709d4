package earlyrepair

import "context"

// RepairFile learns a grammar from the positive/negative samples at
// positivesPath/negativesPath (one string per line, §6), loads or
// builds the grammar cache at cachePath, and runs the repair loop
// against broken using oracle. This is the single call most embedders
// need; RepairLoop and Engine remain available directly for anything
// finer-grained (streaming samples, reusing one Engine across many
// inputs, custom logging).
func RepairFile(ctx context.Context, cfg *Config, oracle Oracle, log Logger, cachePath, positivesPath, negativesPath, broken string) (*RepairStatus, error) {
	positives, err := ReadSampleFile(positivesPath)
	if err != nil {
		return nil, err
	}
	negatives, err := ReadSampleFile(negativesPath)
	if err != nil {
		return nil, err
	}
	return NewRepairLoop(cfg, oracle, log, cachePath).Run(ctx, positives, negatives, broken)
}

// Repair is RepairFile's in-memory counterpart: positives/negatives
// are passed directly rather than read from sample files.
func Repair(ctx context.Context, cfg *Config, oracle Oracle, log Logger, cachePath string, positives, negatives []string, broken string) (*RepairStatus, error) {
	return NewRepairLoop(cfg, oracle, log, cachePath).Run(ctx, positives, negatives, broken)
}
