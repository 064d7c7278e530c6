// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import "github.com/Espyo/Pikifen-sub018/internal/mobscript"

// Instruction ids. New kinds are appended so existing ids stay stable.
const (
	IDSetState mobscript.KindID = mobscript.KindFirstHost + iota

	// Variables and math.
	IDSetVar
	IDCalculate
	IDGetRandomInt
	IDGetRandomFloat
	IDGetAngle
	IDGetDistance
	IDGetCoordinatesFromAngle
	IDGetFloorZ
	IDGetInfo
	IDGetFocusedMobInfo
	IDGetEventInfo
	IDGetAreaInfo
	IDGetMobCount
	IDPrint
	IDShowMessageFromVar
	IDSaveFocusedMobMemory
	IDLoadFocusedMobMemory
	IDSetTimer

	// Movement.
	IDMoveToAbsolute
	IDMoveToRelative
	IDMoveToTarget
	IDStop
	IDStopVertically
	IDStabilizeZ
	IDTeleportToAbsolute
	IDTeleportToRelative
	IDTurnToAbsolute
	IDTurnToRelative
	IDTurnToTarget
	IDFollowPathToAbsolute
	IDFollowPathRandomly
	IDSetGravity
	IDSetHeight
	IDSetRadius
	IDSetFlying
	IDSetNearReach
	IDSetFarReach
	IDSetSectorScroll
	IDSetCanBlockPaths

	// Health and status.
	IDAddHealth
	IDSetHealth
	IDStartDying
	IDFinishDying
	IDDelete
	IDReceiveStatus
	IDRemoveStatus
	IDSetTangible
	IDSetHiding
	IDSetHuntable
	IDSetHoldable
	IDSetTeam
	IDSetShadowVisibility

	// Focus and interaction.
	IDFocus
	IDHoldFocusedMob
	IDRelease
	IDReleaseStoredMobs
	IDStoreFocusedMobInside
	IDThrowFocusedMob
	IDLinkWithFocusedMob
	IDUnlinkFocusedMob
	IDStartChomping
	IDStopChomping
	IDSwallow
	IDSwallowAll
	IDGetChomped
	IDOrderRelease

	// Messages.
	IDSendMessageToFocus
	IDSendMessageToLinks
	IDSendMessageToNearby

	// Presentation.
	IDSetAnimation
	IDSetLimbAnimation
	IDPlaySound
	IDStopSound
	IDStartParticles
	IDStopParticles
	IDStartHeightEffect
	IDStopHeightEffect
	IDSpawn
	IDDrainLiquid
)
