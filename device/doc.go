// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

/*
Package device binds exact accumulator registers to a memory-mapped
coprocessor.

Each register owns a REGISTER_STRIDE byte window. Values are folded by storing
their float32 bits into one of the lane slots, or four at a time into the batch
slots, and results are loaded from the read slots. Stores may be posted by the
bus, so the binding publishes after every batch and before every load.

The second half of each window holds the register's snapshot. Loading it reads
the live state, and storing to it stages a restore that is committed by a store
to the control word.

	dev, err := device.Open(device.Config{})
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer dev.Close()

	dev.Clear(0)
	dev.Add(0, 1.5)
	value, _ := dev.Read(0)

Any Window implementation can back a Device; package emulator provides one
without hardware.
*/
package device
