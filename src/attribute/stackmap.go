/*
 * classvm - a class-file parser and bytecode interpreter
 * Copyright (c) 2026 by the classvm authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package attribute

import (
	"classvm/bytereader"
	"classvm/constantpool"
	"classvm/errs"
)

// VerificationType is the tagged union of stack-map verification type
// tags: a primitive category, a reference to a class, or an
// uninitialized-object marker tied to a bytecode offset.
type VerificationType interface {
	verificationTag() byte
}

type (
	VTop              struct{}
	VInteger          struct{}
	VFloat            struct{}
	VLong             struct{}
	VDouble           struct{}
	VNull             struct{}
	VUninitializedThis struct{}
	VObject           struct{ ClassIndex constantpool.Index }
	VUninitialized    struct{ Offset uint16 }
)

func (VTop) verificationTag() byte               { return 0 }
func (VInteger) verificationTag() byte           { return 1 }
func (VFloat) verificationTag() byte             { return 2 }
func (VLong) verificationTag() byte              { return 3 }
func (VDouble) verificationTag() byte            { return 4 }
func (VNull) verificationTag() byte              { return 5 }
func (VUninitializedThis) verificationTag() byte { return 6 }
func (VObject) verificationTag() byte            { return 7 }
func (VUninitialized) verificationTag() byte     { return 8 }

func readVerificationType(r *bytereader.Reader) (VerificationType, error) {
	tag, err := r.ReadU8("verification type tag")
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return VTop{}, nil
	case 1:
		return VInteger{}, nil
	case 2:
		return VFloat{}, nil
	case 3:
		return VLong{}, nil
	case 4:
		return VDouble{}, nil
	case 5:
		return VNull{}, nil
	case 6:
		return VUninitializedThis{}, nil
	case 7:
		idx, err := r.ReadU16("object class index")
		return VObject{ClassIndex: constantpool.Index(idx)}, err
	case 8:
		offset, err := r.ReadU16("uninitialized offset")
		return VUninitialized{Offset: offset}, err
	default:
		return nil, &errs.InvalidVerificationType{Tag: tag}
	}
}

func readVerificationTypes(r *bytereader.Reader) ([]VerificationType, error) {
	return bytereader.ReadMany(r,
		func(r *bytereader.Reader) (int, error) {
			n, err := r.ReadU16("verification type count")
			return int(n), err
		},
		readVerificationType,
	)
}

// StackMapFrame is the tagged union of the seven stack-map frame
// variants, selected by the discriminator byte's range as the class
// file format dictates.
type StackMapFrame interface {
	frameOffsetDelta() int
}

type (
	SameFrame struct{ OffsetDelta uint8 }

	SameLocalsOneStackItemFrame struct {
		OffsetDelta uint8
		Stack       VerificationType
	}

	SameLocalsOneStackItemFrameExtended struct {
		OffsetDelta uint16
		Stack       VerificationType
	}

	ChopFrame struct {
		OffsetDelta   uint16
		AbsentLocals  uint8
	}

	SameFrameExtended struct{ OffsetDelta uint16 }

	AppendFrame struct {
		OffsetDelta uint16
		NewLocals   []VerificationType
	}

	FullFrame struct {
		OffsetDelta uint16
		Locals      []VerificationType
		Stack       []VerificationType
	}
)

func (f SameFrame) frameOffsetDelta() int                           { return int(f.OffsetDelta) }
func (f SameLocalsOneStackItemFrame) frameOffsetDelta() int          { return int(f.OffsetDelta) }
func (f SameLocalsOneStackItemFrameExtended) frameOffsetDelta() int  { return int(f.OffsetDelta) }
func (f ChopFrame) frameOffsetDelta() int                            { return int(f.OffsetDelta) }
func (f SameFrameExtended) frameOffsetDelta() int                    { return int(f.OffsetDelta) }
func (f AppendFrame) frameOffsetDelta() int                          { return int(f.OffsetDelta) }
func (f FullFrame) frameOffsetDelta() int                            { return int(f.OffsetDelta) }

// readStackMapFrame dispatches on the discriminator byte per the ranges
// fixed by the format: 0-63 same_frame, 64-127 same_locals_one_stack_item,
// 247 same_locals_one_stack_item_extended, 248-250 chop_frame, 251
// same_frame_extended, 252-254 append_frame, 255 full_frame.
func readStackMapFrame(r *bytereader.Reader) (StackMapFrame, error) {
	disc, err := r.ReadU8("stack map frame type")
	if err != nil {
		return nil, err
	}
	switch {
	case disc <= 63:
		return SameFrame{OffsetDelta: disc}, nil
	case disc >= 64 && disc <= 127:
		item, err := readVerificationType(r)
		if err != nil {
			return nil, err
		}
		return SameLocalsOneStackItemFrame{OffsetDelta: disc - 64, Stack: item}, nil
	case disc == 247:
		offset, err := r.ReadU16("same locals one stack item extended offset")
		if err != nil {
			return nil, err
		}
		item, err := readVerificationType(r)
		if err != nil {
			return nil, err
		}
		return SameLocalsOneStackItemFrameExtended{OffsetDelta: offset, Stack: item}, nil
	case disc >= 248 && disc <= 250:
		offset, err := r.ReadU16("chop frame offset")
		if err != nil {
			return nil, err
		}
		return ChopFrame{OffsetDelta: offset, AbsentLocals: 251 - disc}, nil
	case disc == 251:
		offset, err := r.ReadU16("same frame extended offset")
		return SameFrameExtended{OffsetDelta: offset}, err
	case disc >= 252 && disc <= 254:
		offset, err := r.ReadU16("append frame offset")
		if err != nil {
			return nil, err
		}
		locals, err := readVerificationTypes(r)
		if err != nil {
			return nil, err
		}
		return AppendFrame{OffsetDelta: offset, NewLocals: locals}, nil
	case disc == 255:
		offset, err := r.ReadU16("full frame offset")
		if err != nil {
			return nil, err
		}
		locals, err := readVerificationTypes(r)
		if err != nil {
			return nil, err
		}
		stack, err := readVerificationTypes(r)
		if err != nil {
			return nil, err
		}
		return FullFrame{OffsetDelta: offset, Locals: locals, Stack: stack}, nil
	default:
		return nil, &errs.InvalidStackFrameType{Discriminator: disc}
	}
}
