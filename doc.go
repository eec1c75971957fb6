// Package grovego searches datasets for records matching a value with
// blocked Grover circuits, synthesized for a two-primitive native gate set
// (universal single-qubit rotation + symmetric controlled-phase).
//
// The execution platform enforces a hard circuit-depth ceiling, so the
// address space is partitioned into fixed-width blocks and only one block's
// worth of logical qubits is placed in superposition per circuit. A block
// id plus the measured in-block index reconstruct the global record id.
//
// # Quick Start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./data")
//
//	p, _ := plan.Build(ctx, plan.Config{
//	    Store:       store,
//	    KMin:        0,
//	    KMax:        10,
//	    TargetValue: 100,
//	})
//
//	scanner, _ := grovego.New(sim.NewBackend()).
//	    BlockBits(4).
//	    MeasuredWidth(10).
//	    Shots(2000).
//	    Iterations(1).
//	    Build()
//
//	results, _ := scanner.Run(ctx, p, bitorder.Identity(10))
//
// On hardware the bit-order mapping comes from a calibration pass
// (bitorder.Prober) instead of Identity, because backends do not guarantee
// that wire i lands at bitstring position i.
//
// # Layering
//
//   - circuit: wires, the two native gates, value-semantics programs
//   - synth: CNOT, Toffoli and multi-controlled phase flips with ancilla borrowing
//   - grover: oracle, diffusion and the program assembler
//   - block, bitorder: index codec and measurement decoding
//   - backend, sim: execution collaborator and the exact local simulator
//   - dataset, plan, blobstore, codec: experiment artifacts and persistence
package grovego
