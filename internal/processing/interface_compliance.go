package processing

import (
	"torn_flight_board/internal/deployment"
	"torn_flight_board/internal/flightlog"
	"torn_flight_board/internal/sheets"
	"torn_flight_board/internal/torn"
)

// Compile-time interface compliance checks
// These will cause compilation errors if the types don't implement the interfaces

var (
	_ FlightLogSource       = (*flightlog.Client)(nil)
	_ TornClientInterface   = (*torn.Client)(nil)
	_ NameResolverInterface = (*NameResolver)(nil)
	_ BoardPublisher        = (*sheets.BoardManager)(nil)
	_ BoardPublisher        = (*deployment.SSHDeployer)(nil)
	_ BoardViewer           = (*BoardProcessor)(nil)
)
