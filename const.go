// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

const (
	SecPerDay = 86400.0 // Seconds per day
	MJD0      = 40587   // MJD of the Unix epoch 1970/1/1 00:00:00
	MaxSats   = 400     // Default ceiling of the satellite catalog
	DefSys    = 'G'     // Constellation assumed when a PRN token carries none
)
