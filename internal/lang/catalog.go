package lang

var catalog = map[string]map[string]string{
	English: {
		"lang_usage":        "❌ Please provide a language code: `!lang en` or `!lang fr`",
		"lang_invalid":      "❌ Invalid language. Available options: `en`, `fr`",
		"lang_set":          "✅ Language set to English.",
		"id_invalid":        "❌ **Invalid UID!**\n➡️ Please use: `!ID 123456789`",
		"lookup_not_found":  "❌ Could not get information. Try again later.",
		"lookup_failed":     "⚠️ An error occurred while checking the ban status.",
		"lookup_down":       "⚠️ The ban lookup service is unavailable. Try again later.",
		"ffid_usage":        "❌ Please provide a Free Fire ID: `!check_freefire_id 123456789`",
		"ffid_invalid":      "❌ **Invalid UID!**\n➡️ Please use: `!check_freefire_id 123456789`",
		"ffid_cooldown":     "⏳ This command is on cooldown. Try again in %d seconds.",
		"ffid_banned":       "🛑 Player `%s` (%s, %s) is **banned**. Suspension duration: %s.",
		"ffid_clean":        "✅ Player `%s` (%s, %s) is **not banned**.",
		"title_banned":      "**▌ Banned Account 🛑 **",
		"title_clean":       "**▌ Clean Account ✅ **",
		"field_reason":      "Reason",
		"field_status":      "Status",
		"field_duration":    "Suspension duration",
		"field_nickname":    "Nickname",
		"field_player_id":   "Player ID",
		"field_region":      "Region",
		"reason_cheats":     "This account was confirmed for using cheats.",
		"status_clean":      "No sufficient evidence of cheat usage.",
		"period_months":     "more than %d months",
		"period_unknown":    "unavailable",
		"value_missing":     "N/A",
		"checkban_usage":    "❌ Please provide a numeric user ID: `!checkban 123456789012345678`",
		"checkban_banned":   "User with ID `%s` is banned in %s.",
		"checkban_clean":    "User with ID `%s` is not banned in %s.",
		"checkban_unknown":  "⚠️ Could not verify whether user `%s` is banned in %s. I may be missing the Ban Members permission.",
		"listbans_denied":   "I do not have permission to view the ban list.",
		"listbans_error":    "An error occurred: %s",
		"listbans_empty":    "There are no banned users in this server.",
		"listbans_header":   "Banned users:\n",
		"ban_usage":         "❌ Usage: `!ban <member> [reason]`",
		"ban_no_permission": "❌ You need the Ban Members permission to use this command.",
		"ban_member_404":    "❌ Member `%s` not found.",
		"ban_done":          "%s has been banned. Reason: %s",
		"ban_failed":        "Failed to ban %s. Error: %s",
		"guild_only":        "❌ This command can only be used in a server.",
		"guilds_header":     "Bot is in the following guilds:\n",
		"internal_error":    "⚠️ Sorry, something went wrong while running this command.",
		"help_title":        "Available commands",
		"help_body": "`!ID <uid>` check a Free Fire account ban status\n" +
			"`!check_freefire_id <uid>` quick text ban check\n" +
			"`!checkban <user id>` check if a user is banned in this server\n" +
			"`!listbans` list banned users of this server\n" +
			"`!ban <member> [reason]` ban a member\n" +
			"`!guilds` list the servers the bot is in\n" +
			"`!lang <en|fr>` change your language",
	},
	French: {
		"lang_usage":        "❌ Veuillez fournir un code de langue : `!lang en` ou `!lang fr`",
		"lang_set":          "✅ Langue définie sur le français.",
		"id_invalid":        "❌ **UID invalide !**\n➡️ Veuillez fournir un UID valide : `!ID 123456789`",
		"lookup_not_found":  "❌ Impossible d'obtenir les informations. Réessayez plus tard.",
		"lookup_failed":     "⚠️ Une erreur est survenue lors de la vérification du bannissement.",
		"lookup_down":       "⚠️ Le service de vérification est indisponible. Réessayez plus tard.",
		"ffid_usage":        "❌ Veuillez fournir un ID Free Fire : `!check_freefire_id 123456789`",
		"ffid_invalid":      "❌ **UID invalide !**\n➡️ Veuillez fournir un UID valide : `!check_freefire_id 123456789`",
		"ffid_cooldown":     "⏳ Cette commande est en recharge. Réessayez dans %d secondes.",
		"ffid_banned":       "🛑 Le joueur `%s` (%s, %s) est **banni**. Durée de la suspension : %s.",
		"ffid_clean":        "✅ Le joueur `%s` (%s, %s) n'est **pas banni**.",
		"title_banned":      "**▌ Compte banni 🛑 **",
		"title_clean":       "**▌ Compte non banni ✅ **",
		"field_reason":      "Raison",
		"field_status":      "Statut",
		"field_duration":    "Durée de la suspension",
		"field_nickname":    "Pseudo",
		"field_player_id":   "ID du joueur",
		"field_region":      "Région",
		"reason_cheats":     "Ce compte a été confirmé comme utilisant des hacks.",
		"status_clean":      "Aucune preuve suffisante pour confirmer l’utilisation de hacks.",
		"period_months":     "plus de %d mois",
		"period_unknown":    "indisponible",
		"checkban_usage":    "❌ Veuillez fournir un ID utilisateur numérique : `!checkban 123456789012345678`",
		"checkban_banned":   "L'utilisateur avec l'ID `%s` est banni de %s.",
		"checkban_clean":    "L'utilisateur avec l'ID `%s` n'est pas banni de %s.",
		"checkban_unknown":  "⚠️ Impossible de vérifier si l'utilisateur `%s` est banni de %s. La permission Bannir des membres me manque peut-être.",
		"ban_usage":         "❌ Utilisation : `!ban <membre> [raison]`",
		"ban_no_permission": "❌ Vous devez avoir la permission Bannir des membres pour utiliser cette commande.",
		"ban_member_404":    "❌ Membre `%s` introuvable.",
		"guild_only":        "❌ Cette commande ne peut être utilisée que dans un serveur.",
		"internal_error":    "⚠️ Désolé, une erreur est survenue pendant l'exécution de cette commande.",
		"help_title":        "Commandes disponibles",
		"help_body": "`!ID <uid>` vérifier le bannissement d'un compte Free Fire\n" +
			"`!check_freefire_id <uid>` vérification rapide en texte\n" +
			"`!checkban <id utilisateur>` vérifier si un utilisateur est banni du serveur\n" +
			"`!listbans` lister les utilisateurs bannis du serveur\n" +
			"`!ban <membre> [raison]` bannir un membre\n" +
			"`!guilds` lister les serveurs du bot\n" +
			"`!lang <en|fr>` changer de langue",
	},
}
