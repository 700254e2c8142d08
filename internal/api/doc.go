// Package api provides the FTX REST API client used by the collector.
//
// REST endpoint:
//   - Production: https://ftx.com/api
//
// Every response is wrapped in the FTX envelope:
//
//	{"success": true, "result": ...}
//
// Authenticated requests carry FTX-KEY / FTX-TS / FTX-SIGN headers and,
// for sub-accounts, FTX-SUBACCOUNT.
package api
