// Package ingest reads gamma spectrum files into calibrated energy and
// count-rate arrays.
//
// Two formats are supported:
//
//   - SPE: text split into "$NAME:" sections. $MEAS_TIM: holds the live and
//     real time, $DATA: the first and last channel followed by one count per
//     channel, $ENER_FIT: the linear energy calibration "intercept slope".
//   - Columnar: "# key: value" metadata lines (live time (s), real time (s))
//     followed by rows whose first two columns are energy and raw count.
//
// Count rates are raw counts divided by the live time.
package ingest
