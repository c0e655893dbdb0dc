// Package inspect turns display lists into readable op dumps.
//
// A Recorder is a displaylist.Receiver that captures every call it receives
// as an Entry. Entries marshal to YAML, which makes them convenient for
// debugging a recording or for golden comparisons:
//
//	var buf bytes.Buffer
//	if err := inspect.DumpList(&buf, list); err != nil {
//		return err
//	}
//
// Geometry is written in LTRB order, colors as #rrggbbaa and resources such
// as paths and images as short summaries.
package inspect
