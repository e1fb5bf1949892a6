package output

// TSVHeader is the canonical header row for TSV output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "target_id\tquery_id\tstart1\tend1\tstart2\tend2\tenergy\thybrid_energy\tbase_pairs\tdot_bar\tsubseq1\tsubseq2"
